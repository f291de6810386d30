package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	// Env is "development" or "production". Production requires real token
	// secrets and turns on the Secure cookie attribute.
	Env string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// MongoURI selects the backing store: set for MongoDB, empty for the
	// in-memory dev store.
	MongoURI string
	DBName   string

	// CORSOrigin is the single allowed cross-origin origin (credentials
	// enabled). Empty disables CORS handling.
	CORSOrigin string

	// StaticDir is served at / when the directory exists.
	StaticDir string

	// HashWorkers bounds concurrent bcrypt computations.
	HashWorkers int

	// If true, /readyz returns 503 unless the database is configured and reachable.
	ReadinessRequireDB bool
}

// Production reports whether the process runs under the production policy.
func (c Config) Production() bool { return c.Env == "production" }

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("STUDENTS_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("STUDENTS_LOG_LEVEL", "info"),
		LogFormat: EnvString("STUDENTS_LOG_FORMAT", "json"),

		Env: EnvString("STUDENTS_ENV", "development"),

		ReadHeaderTimeout: EnvDuration("STUDENTS_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("STUDENTS_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("STUDENTS_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("STUDENTS_HTTP_IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    EnvInt("STUDENTS_HTTP_MAX_HEADER_BYTES", 1<<20),

		MongoURI: EnvString("STUDENTS_MONGODB_URI", ""),
		DBName:   EnvString("STUDENTS_DB_NAME", "studentfees"),

		CORSOrigin: EnvString("STUDENTS_CORS_ORIGIN", ""),
		StaticDir:  EnvString("STUDENTS_STATIC_DIR", "public"),

		HashWorkers: EnvInt("STUDENTS_HASH_WORKERS", 4),

		ReadinessRequireDB: EnvBool("STUDENTS_READINESS_REQUIRE_DB", false),
	}
}
