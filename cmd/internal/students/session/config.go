package session

import (
	"errors"
	"os"
	"strings"
	"time"
)

// ErrConfig is returned for invalid session configuration.
var ErrConfig = errors.New("invalid session config")

// Config defines all runtime configuration for the session subsystem.
//
// It is intentionally explicit and environment-driven so that deployments can
// tune token lifetimes and rotate secrets without code changes.
type Config struct {
	// Issuer is the value set in the "iss" claim of both token types.
	Issuer string

	// AccessSecret signs short-lived access tokens (HS256).
	AccessSecret []byte

	// RefreshSecret signs refresh tokens. MUST differ from AccessSecret.
	RefreshSecret []byte

	// AccessTTL is the lifetime of access tokens.
	AccessTTL time.Duration

	// RefreshTTL is the lifetime of refresh tokens.
	RefreshTTL time.Duration
}

// DefaultConfig returns a configuration suitable for development.
// Production deployments must override both secrets via environment variables.
func DefaultConfig() Config {
	return Config{
		Issuer:        "studentfees",
		AccessSecret:  []byte("dev-access-secret-not-for-production"),
		RefreshSecret: []byte("dev-refresh-secret-not-for-production"),
		AccessTTL:     1 * time.Hour,
		RefreshTTL:    240 * time.Hour,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Optional (durations must be valid Go duration strings):
//   - STUDENTS_AUTH_ISSUER
//   - STUDENTS_ACCESS_TOKEN_SECRET
//   - STUDENTS_ACCESS_TOKEN_TTL
//   - STUDENTS_REFRESH_TOKEN_SECRET
//   - STUDENTS_REFRESH_TOKEN_TTL
//
// When requireSecrets is true (production), both secrets MUST be set and
// distinct; missing or equal secrets return ErrConfig.
func LoadConfigFromEnv(requireSecrets bool) (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("STUDENTS_AUTH_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	if v := os.Getenv("STUDENTS_ACCESS_TOKEN_SECRET"); v != "" {
		cfg.AccessSecret = []byte(v)
	} else if requireSecrets {
		return Config{}, ErrConfig
	}

	if v := os.Getenv("STUDENTS_REFRESH_TOKEN_SECRET"); v != "" {
		cfg.RefreshSecret = []byte(v)
	} else if requireSecrets {
		return Config{}, ErrConfig
	}

	if v := os.Getenv("STUDENTS_ACCESS_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.AccessTTL = d
	}

	if v := os.Getenv("STUDENTS_REFRESH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.RefreshTTL = d
	}

	// Invariants: distinct secrets, refresh outlives access.
	if string(cfg.AccessSecret) == string(cfg.RefreshSecret) {
		return Config{}, ErrConfig
	}
	if cfg.RefreshTTL < cfg.AccessTTL {
		return Config{}, ErrConfig
	}

	return cfg, nil
}
