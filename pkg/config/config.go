// Package config loads application configuration from the environment,
// with optional .env file support.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	RedisURL      string
	RedisPassword string

	// PeeringDB API
	BaseURL   string
	APIKey    string
	UserAgent string

	// Fetcher behavior
	PageDelayMs int
	MaxRetries  int

	// Output
	OutputDir    string
	OutputFormat string // "csv", "json" or "both"

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load reads the .env file (if present) and returns a populated Config.
// System environment variables take precedence over .env entries.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using system env vars")
	}

	return &Config{
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		BaseURL:   getEnv("PEERINGDB_BASE_URL", "https://www.peeringdb.com/api"),
		APIKey:    getEnv("PEERINGDB_API_KEY", ""),
		UserAgent: getEnv("USER_AGENT", "peeringdb-market/0.1.0"),

		PageDelayMs: getEnvInt("PAGE_DELAY_MS", 500),
		MaxRetries:  getEnvInt("MAX_RETRIES", 3),

		OutputDir:    getEnv("OUTPUT_DIR", "peeringdb_data"),
		OutputFormat: getEnv("OUTPUT_FORMAT", "both"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvBool("LOG_PRETTY", false),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
