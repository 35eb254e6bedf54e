package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds portal configuration, loaded from environment variables
type Config struct {
	Host     string `env:"PORTAL_HOST" envDefault:""`
	Port     int    `env:"PORTAL_PORT" envDefault:"8080"`
	LogLevel string `env:"PORTAL_LOG_LEVEL" envDefault:"info"`

	// Storage selects the profile persistence backend: memory, sqlite or redis
	Storage    string `env:"PORTAL_STORAGE" envDefault:"sqlite"`
	SQLitePath string `env:"PORTAL_SQLITE_PATH" envDefault:"portal.db"`
	RedisURL   string `env:"PORTAL_REDIS_URL" envDefault:"redis://localhost:6379"`
}

// Load reads configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
