package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/bouncer/pkg/jwtx"
)

type Config struct {
	Issuer   string   // Optional: issuer claim for tokens (default: bouncer)
	Audience []string // Optional: audience values tokens must carry (default: none)

	Algorithm      string        // Optional: token signing algorithm (HS256, EdDSA) (default: EdDSA)
	HS256Secret    string        // Required for HS256: shared signing secret, min 32 bytes
	SigningKeyFile string        // Optional: path to Ed25519 PEM key, generated if absent (default: ./signing.key)
	TokenTTL       time.Duration // Optional: lifetime of issued tokens (default: 15m)
	ClockSkew      time.Duration // Optional: leeway for exp/nbf checks on presented tokens (default: 30s)
	BearerScheme   string        // Optional: Authorization scheme for presented tokens (default: Bearer)

	DBDriver      string // Optional: user store driver (sqlite, mongo) (default: sqlite)
	DatabaseFile  string // Optional: path to SQLite database file (default: ./bouncer.db)
	MongoURI      string // Required for mongo driver: connection URI
	MongoDatabase string // Optional: mongo database name (default: bouncer)

	PepperFile    string // Optional: path to file containing pepper for password hashing (default: ./pepper)
	SeedDemoUsers bool   // Optional: seed demo accounts into an empty store (default: false)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("BOUNCER_ISSUER", "bouncer"),
		Algorithm:      getEnvOrDefault("BOUNCER_ALGORITHM", "EdDSA"),
		HS256Secret:    os.Getenv("BOUNCER_HS256_SECRET"),
		SigningKeyFile: getEnvOrDefault("BOUNCER_SIGNING_KEY_FILE", "signing.key"),
		TokenTTL:       getEnvDurationOrDefault("BOUNCER_TOKEN_TTL", jwtx.DefaultTokenTTL),
		ClockSkew:      getEnvDurationOrDefault("BOUNCER_CLOCK_SKEW", jwtx.DefaultLeeway),
		BearerScheme:   getEnvOrDefault("BOUNCER_BEARER_SCHEME", "Bearer"),

		DBDriver:      getEnvOrDefault("BOUNCER_DB_DRIVER", "sqlite"),
		DatabaseFile:  getEnvOrDefault("BOUNCER_DATABASE_FILE", "bouncer.db"),
		MongoURI:      os.Getenv("BOUNCER_MONGO_URI"),
		MongoDatabase: getEnvOrDefault("BOUNCER_MONGO_DATABASE", "bouncer"),

		PepperFile:    getEnvOrDefault("BOUNCER_PEPPER_FILE", "pepper"),
		SeedDemoUsers: getEnvBoolOrDefault("BOUNCER_SEED_DEMO_USERS", false),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Audience is a space-separated list, matching how roles are written.
	if aud := os.Getenv("BOUNCER_AUDIENCE"); aud != "" {
		cfg.Audience = strings.Fields(aud)
	}

	return cfg
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
