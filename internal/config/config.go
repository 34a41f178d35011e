// Package config loads optional user configuration from a YAML file.
// Everything has a sensible default, so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path"`

	// Theme selects the color theme: "dark" or "light".
	Theme string `yaml:"theme"`

	// AnimationSpeed controls challenge animation pacing:
	// "slow", "normal", or "fast".
	AnimationSpeed string `yaml:"animation_speed"`

	// Verbose lowers the log level to debug.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:          "dark",
		AnimationSpeed: "normal",
	}
}

// Load reads the config file at path. A missing file returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalized(), nil
}

func (c Config) normalized() Config {
	switch c.Theme {
	case "dark", "light":
	default:
		c.Theme = "dark"
	}
	switch c.AnimationSpeed {
	case "slow", "normal", "fast":
	default:
		c.AnimationSpeed = "normal"
	}
	return c
}

// DefaultPath resolves the config file path:
// 1. $XDG_CONFIG_HOME/mlplay/config.yaml
// 2. ~/.config/mlplay/config.yaml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mlplay", "config.yaml"), nil
}
