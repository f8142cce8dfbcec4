// Package appconfig loads CLI-level settings from an optional YAML file.
// It has no bearing on the persisted binary base: that stays governed
// entirely by the routing/render settings embedded in the request
// document.
package appconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the process-level configuration: nothing here is part of the
// domain model, only how the CLI logs and where it looks for a base file
// by default.
type Config struct {
	LogLevel        string `yaml:"log_level"`
	DefaultBaseFile string `yaml:"default_base_file"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads and parses a YAML config file. A missing file is not an
// error: the CLI falls back to Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("appconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("appconfig: parsing %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
