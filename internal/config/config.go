// Package config loads settings for the cycles command.
//
// Settings are resolved in order: built-in defaults, the TOML config file,
// then environment variables. Command-line flags are applied last by the CLI.
//
// Example config.toml:
//
//	db_path = "/home/me/.cycles/cycles.db"
//	log_level = "info"
//	log_format = "text"
//	metrics_file = "/var/lib/node_exporter/cycles.prom"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override file settings.
const (
	EnvDBPath      = "CYCLES_DB_PATH"
	EnvMetricsFile = "CYCLES_METRICS_FILE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
)

// Config holds the resolved settings.
type Config struct {
	// DBPath is the SQLite database holding the tracker state.
	DBPath string `toml:"db_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFormat is "text" (colored) or "json".
	LogFormat string `toml:"log_format"`

	// MetricsFile, when set, receives Prometheus metrics in text format after
	// every command.
	MetricsFile string `toml:"metrics_file"`
}

// Dir returns the default configuration directory, ~/.cycles.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cycles"), nil
}

// Default returns the built-in settings rooted at dir.
func Default(dir string) Config {
	return Config{
		DBPath:    filepath.Join(dir, "cycles.db"),
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load resolves the configuration. An empty path means config.toml in Dir().
// A missing file is not an error.
func Load(path string) (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	if path == "" {
		path = filepath.Join(dir, "config.toml")
	}

	cfg := Default(dir)
	if err := cfg.readFile(path); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DBPath = getEnv(EnvDBPath, c.DBPath)
	c.MetricsFile = getEnv(EnvMetricsFile, c.MetricsFile)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.LogFormat = getEnv(EnvLogFormat, c.LogFormat)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
