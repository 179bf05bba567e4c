package config

import (
	"fmt"
	"log/slog"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	APIBaseURL  string `yaml:"api_base_url"`
	DBDriver    string `yaml:"db_driver"`
	DBPath      string `yaml:"db_path"`
	AuthEnabled bool   `yaml:"auth_enabled"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`

	NotifyEmail      string `yaml:"notify_email"`
	NudgeWindowHours int    `yaml:"nudge_window_hours"`

	// Secret, never read from the config file.
	ResendAPIKey string `yaml:"-"`
}

// Load reads the YAML config named by CADENCE_CONFIG (default config.yaml),
// fills in defaults, and applies environment overrides for secrets.
func Load() (*Config, error) {
	path := os.Getenv("CADENCE_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "sqlite"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "cadence.db"
	}
	if cfg.NudgeWindowHours == 0 {
		cfg.NudgeWindowHours = 6
	}

	cfg.ResendAPIKey = os.Getenv("CADENCE_RESEND_API_KEY")

	return cfg, nil
}

// SlogLevel maps the configured log level onto slog's levels, defaulting
// to info for anything unrecognized.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
