// Package config implements application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads the configuration from a YAML file on top of the defaults and validates it.
// An empty filePath means DefaultConfigFilePath; a missing default file yields the defaults.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	loadPath := filePath
	if loadPath == "" {
		loadPath = DefaultConfigFilePath
	}

	fileBytes, err := os.ReadFile(loadPath)
	switch {
	case errors.Is(err, os.ErrNotExist) && (filePath == "" || filePath == DefaultConfigFilePath):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file '%s': %w", loadPath, err)
	default:
		if err := yaml.Unmarshal(fileBytes, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", loadPath, err)
		}
	}

	cfg.Logger.Level = LogLevel(strings.ToLower(string(cfg.Logger.Level)))
	cfg.Logger.Format = LogFormat(strings.ToLower(string(cfg.Logger.Format)))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in '%s': %w", loadPath, err)
	}
	return cfg, nil
}
