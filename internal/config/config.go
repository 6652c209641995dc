// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries everything the process reads from its environment.
// Simulation tuning never lives here; only deployment concerns do.
type Config struct {
	// Seed overrides the scenario seed when nonzero.
	Seed int64 `env:"SEOSA_SEED"`

	// ScenarioPath points at a YAML cast file. Empty uses the built-in
	// scenario.
	ScenarioPath string `env:"SEOSA_SCENARIO"`

	// DBPath enables SQLite persistence when set.
	DBPath string `env:"SEOSA_DB"`

	// Port for the HTTP API.
	Port int `env:"SEOSA_PORT" envDefault:"8080"`

	// AdminKey guards POST endpoints. Empty disables them.
	AdminKey string `env:"SEOSA_ADMIN_KEY"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `env:"SEOSA_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("bad SEOSA_LOG_LEVEL %q", cfg.LogLevel)
	}
	return cfg, nil
}
