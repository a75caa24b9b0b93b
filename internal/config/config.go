package config

import (
	"log"
	"os"
	"strconv"
)

// Config gathers every knob the service reads from the environment.
type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	// Migrations selects the versioned SQL path over AutoMigrate.
	Migrations bool
	// Seed creates the operator roles and dev users at startup.
	Seed bool
	// DBDebug turns on gorm query logging.
	DBDebug bool
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "glassfab.db"),
		Env:         getEnv("APP_ENV", "development"),
		Migrations:  ParseBool("MIGRATIONS", false),
		Seed:        ParseBool("DB_SEED", false),
		DBDebug:     ParseBool("DB_DEBUG", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
