// Package config handles the configuration directory, the persisted connection
// settings and per-invocation overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "checkmate"

	// SettingsFile is the persisted settings filename.
	SettingsFile = "config.toml"
)

// Config holds configuration paths and settings for one invocation.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Overrides holds settings given on the command line. Non-empty fields
	// shadow the environment and the persisted file.
	Overrides Settings
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/checkmate or $HOME/.config/checkmate.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to the persisted settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// HasSettings checks if the settings file exists.
func (c *Config) HasSettings() bool {
	_, err := os.Stat(c.SettingsPath())
	return err == nil
}

// RemoveSettings deletes the settings file.
func (c *Config) RemoveSettings() error {
	return os.Remove(c.SettingsPath())
}

// Settings returns the effective connection settings: the persisted file,
// shadowed by the environment, shadowed by command-line overrides.
// A missing file is not an error as long as the overrides fill every field.
func (c *Config) Settings() (Settings, error) {
	base, err := Load(c.SettingsPath())
	if err != nil && !errors.Is(err, ErrConfigMissing) {
		return Settings{}, err
	}

	merged := Merge(Merge(base, EnvOverrides()), c.Overrides)
	if missing := merged.Missing(); len(missing) > 0 {
		return merged, fmt.Errorf("%w: missing %s", ErrConfigMissing, strings.Join(missing, ", "))
	}
	return merged, nil
}
