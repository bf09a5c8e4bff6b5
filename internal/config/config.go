package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string

	// Token signing configuration. The secret is read once at startup
	// and injected into the token codec; rotating it invalidates every
	// outstanding token immediately.
	JWTSecret []byte
	TokenTTL  time.Duration

	// Trending recomputation schedule (standard cron expression) and
	// the sliding window it counts tweets over.
	TrendingCron   string
	TrendingWindow time.Duration
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	window, err := time.ParseDuration(getEnv("TRENDING_WINDOW", "24h"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		DatabasePath:   getEnv("DATABASE_PATH", "./twitter.db"),
		JWTSecret:      []byte(secret),
		TokenTTL:       ttl,
		TrendingCron:   getEnv("TRENDING_CRON", "*/10 * * * *"),
		TrendingWindow: window,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
