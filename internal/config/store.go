package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Environment variables that shadow the persisted settings.
const (
	EnvURL         = "CHECKMATE_URL"
	EnvMove        = "CHECKMATE_MOVE"
	EnvGrandmaster = "CHECKMATE_GRANDMASTER"
)

// ErrConfigMissing indicates there is no settings file, or that the effective
// settings still lack a required field.
var ErrConfigMissing = errors.New("not configured")

// WriteError is returned when the settings file cannot be written or its
// permissions cannot be restricted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Settings holds the connection parameters for the checkmate service.
type Settings struct {
	URL         string `toml:"base_url"`
	Move        string `toml:"move"`
	Grandmaster string `toml:"grandmaster"`
}

// Missing returns the flag names of empty fields, in flag order.
func (s Settings) Missing() []string {
	var missing []string
	if s.URL == "" {
		missing = append(missing, "url")
	}
	if s.Move == "" {
		missing = append(missing, "move")
	}
	if s.Grandmaster == "" {
		missing = append(missing, "grandmaster")
	}
	return missing
}

// Load reads settings from path. Values are returned verbatim.
// Returns ErrConfigMissing if the file does not exist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the config dir
	if os.IsNotExist(err) {
		return Settings{}, ErrConfigMissing
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reading config: %w", err)
	}

	var s Settings
	if _, err := toml.Decode(string(data), &s); err != nil {
		return Settings{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return s, nil
}

// Merge returns base with every non-empty field of overrides applied.
func Merge(base, overrides Settings) Settings {
	merged := base
	if overrides.URL != "" {
		merged.URL = overrides.URL
	}
	if overrides.Move != "" {
		merged.Move = overrides.Move
	}
	if overrides.Grandmaster != "" {
		merged.Grandmaster = overrides.Grandmaster
	}
	return merged
}

// Save writes s to path, replacing the whole file. The file is restricted to
// mode 0600 before any content is written, and its directory is created with
// mode 0700.
func Save(path string, s Settings) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	// OpenFile only applies the mode on creation.
	if err := f.Chmod(0600); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// EnvOverrides returns the settings found in the environment.
func EnvOverrides() Settings {
	return Settings{
		URL:         os.Getenv(EnvURL),
		Move:        os.Getenv(EnvMove),
		Grandmaster: os.Getenv(EnvGrandmaster),
	}
}
