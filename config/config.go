/*
Package config loads the server configuration from a YAML file.

PURPOSE:
  One struct, one file, flag overrides in main. Nothing here changes
  ledger behavior except the tracked year; everything else is wiring
  (where to listen, where the database and export artifacts live).

EXAMPLE (tally.yaml):
  server:
    port: 8080
  database:
    path: ./tally.db
  export:
    dir: ./exports
  tracking:
    year: 2025
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Export   ExportConfig   `json:"export" yaml:"export"`
	Tracking TrackingConfig `json:"tracking" yaml:"tracking"`
}

// ServerConfig contains HTTP listener parameters.
type ServerConfig struct {
	Port int `json:"port" yaml:"port"`
}

// DatabaseConfig contains snapshot store parameters.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"` // ":memory:" for an in-memory store
}

// ExportConfig contains export artifact parameters.
type ExportConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// TrackingConfig pins the tracked calendar year.
type TrackingConfig struct {
	Year int `json:"year" yaml:"year"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Path: "tally.db"},
		Export:   ExportConfig{Dir: "exports"},
		Tracking: TrackingConfig{Year: 2025},
	}
}

// Load reads and validates a YAML config file, starting from defaults so
// omitted sections keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Tracking.Year < 1 {
		return fmt.Errorf("invalid tracking year %d", c.Tracking.Year)
	}
	return nil
}
