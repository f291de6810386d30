package studentapi

import (
	"os"
	"strconv"
	"strings"
)

const (
	// AccessCookieName is the cookie carrying the access token.
	AccessCookieName = "accessToken"

	// RefreshCookieName is the cookie carrying the refresh token.
	RefreshCookieName = "refreshToken"
)

// Config controls student API behavior.
type Config struct {
	// SecureCookies sets the Secure attribute on session cookies.
	// On in production, off in development so plain-HTTP testing works.
	SecureCookies bool

	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64
}

// LoadConfigFromEnv loads API config from environment variables with defaults.
func LoadConfigFromEnv() Config {
	return Config{
		SecureCookies: strings.EqualFold(strings.TrimSpace(os.Getenv("STUDENTS_ENV")), "production"),
		MaxBodyBytes:  envInt64("STUDENTS_MAX_BODY_BYTES", 16<<10), // 16 KiB
	}
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
