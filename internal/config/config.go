package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServerAddr     string   `env:"MSGBOARD_ADDR" envDefault:"localhost:8000"`
	DatabaseDSN    string   `env:"MSGBOARD_DATABASE_DSN" envDefault:"host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"`
	AllowedOrigins []string `env:"MSGBOARD_ALLOWED_ORIGINS" envSeparator:","`
}

// NewConfig loads configuration from the environment and applies any
// non-empty command line overrides on top.
func NewConfig(serverAddr, databaseDSN string, allowedOrigins []string) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if serverAddr != "" {
		cfg.ServerAddr = serverAddr
	}
	if databaseDSN != "" {
		cfg.DatabaseDSN = databaseDSN
	}
	if len(allowedOrigins) > 0 {
		cfg.AllowedOrigins = allowedOrigins
	}

	if cfg.ServerAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}

	return &cfg, nil
}
