// Package config loads server configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App AppConfig
	DB  DBConfig
}

// AppConfig holds HTTP server configuration.
type AppConfig struct {
	Port     int
	LogLevel string
	Seed     bool
}

// DBConfig holds storage configuration.
type DBConfig struct {
	// Path is the SQLite database path; ":memory:" for ephemeral runs.
	Path string
}

// Load reads configuration from the environment. A missing .env file is
// fine; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	seed, err := strconv.ParseBool(getEnv("SEED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}

	return &Config{
		App: AppConfig{
			Port:     port,
			LogLevel: getEnv("LOG_LEVEL", "info"),
			Seed:     seed,
		},
		DB: DBConfig{
			Path: getEnv("DB_PATH", "leave.db"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
