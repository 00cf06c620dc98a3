// Package config handles configuration loading and validation for tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// StoreFile is the JSON task store. Relative paths resolve against the
	// working directory.
	StoreFile string `yaml:"store_file" toml:"store_file"`
	// Color is one of auto, always, never.
	Color string `yaml:"color" toml:"color"`
	// Theme names the palette used when color is enabled.
	Theme string `yaml:"theme" toml:"theme"`
	// DefaultSort is used by list when no sort key is given.
	DefaultSort string `yaml:"default_sort" toml:"default_sort"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StoreFile:   "tasks.json",
		Color:       "auto",
		Theme:       "tokyo-night",
		DefaultSort: "due",
	}
}

// Load reads configuration from the given path, YAML unless the file ends
// in .toml, and validates it.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation. It fails only when the file cannot be
// read or parsed.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := decodeFile(configPath, &cfg); err != nil {
				return nil, err
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	return &cfg, nil
}

// decodeFile reads YAML, or TOML when the file has a .toml extension.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config file: %w", err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.StoreFile == "" {
		c.StoreFile = defaults.StoreFile
	}
	if c.Color == "" {
		c.Color = defaults.Color
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.DefaultSort == "" {
		c.DefaultSort = defaults.DefaultSort
	}
}
