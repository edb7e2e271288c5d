package app

import (
	"os"
	"strconv"
	"time"

	"github.com/shuttleworks/smashpos/pkg/jwtx"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for session tokens; absence is a deployment error
	Issuer    string // Optional: issuer claim for tokens (default: smashpos)

	SessionTTL   time.Duration // Optional: session token/cookie lifetime (default: 7 days)
	DatabaseFile string        // Optional: path to SQLite database file (default: ./smashpos.db)
	PepperFile   string        // Optional: path to pepper file for password hashing; empty disables peppering

	BootstrapAdminEmail    string // Optional: with the password, seeds the first admin on an empty database
	BootstrapAdminPassword string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:              os.Getenv("POS_JWT_SECRET"),
		Issuer:                 getEnvOrDefault("POS_ISSUER", "smashpos"),
		SessionTTL:             getEnvDurationOrDefault("POS_SESSION_TTL", jwtx.DefaultSessionTTL),
		DatabaseFile:           getEnvOrDefault("POS_DATABASE_FILE", "smashpos.db"),
		PepperFile:             os.Getenv("POS_PEPPER_FILE"),
		BootstrapAdminEmail:    os.Getenv("POS_BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: os.Getenv("POS_BOOTSTRAP_ADMIN_PASSWORD"),
		Env:                    getEnvOrDefault("ENV", "dev"),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                   getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:    getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// IsProd reports whether the service runs with production settings, which
// controls the Secure flag on session cookies.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are read as hours, convenient for long-lived sessions.
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
