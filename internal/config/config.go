package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	SaveDir     string `env:"BASILISK_SAVE_DIR" envDefault:".saves"`
	SaveBackend string `env:"BASILISK_SAVE_BACKEND" envDefault:"yaml"`
	SQLitePath  string `env:"BASILISK_SQLITE_PATH" envDefault:".saves/basilisk.db"`
	StartRoom   string `env:"BASILISK_START_ROOM" envDefault:"boot"`
	LogFile     string `env:"BASILISK_LOG_FILE" envDefault:"basilisk.log"`
	LogMaxSize  int    `env:"BASILISK_LOG_MAX_SIZE_MB" envDefault:"5"`
	Debug       bool   `env:"BASILISK_DEBUG"`

	// GeminiAPIKey enables the /ask oracle when set.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.SaveBackend {
	case BackendYAML, BackendSQLite:
	default:
		return nil, fmt.Errorf("BASILISK_SAVE_BACKEND must be %q or %q, got %q", BackendYAML, BackendSQLite, cfg.SaveBackend)
	}
	if cfg.StartRoom == "" {
		return nil, fmt.Errorf("BASILISK_START_ROOM must not be empty")
	}
	if cfg.LogMaxSize <= 0 {
		return nil, fmt.Errorf("BASILISK_LOG_MAX_SIZE_MB must be positive, got %d", cfg.LogMaxSize)
	}

	return cfg, nil
}
