// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"minitodo/internal/domain"
)

// AppName is the directory name used under XDG config and state homes.
const AppName = "minitodo"

// ConfigFileName is the configuration file name inside the config dir.
const ConfigFileName = "config.toml"

// Environment variable names. The environment always takes precedence
// over the config file.
const (
	EnvGatewayURL = "SUPABASE_URL"
	EnvAnonKey    = "SUPABASE_ANON_KEY"
)

// fileConfig mirrors the TOML file layout.
type fileConfig struct {
	URL     string `toml:"url"`
	AnonKey string `toml:"anon_key"`
	Log     struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Loader loads configuration from the environment and an optional TOML file.
type Loader struct {
	confDir string // Config directory (e.g. ~/.config/minitodo)
}

// NewLoader creates a new Loader using the default config directory.
func NewLoader() *Loader {
	return &Loader{confDir: DefaultConfigDir()}
}

// NewLoaderWithDir creates a new Loader with a custom config directory.
// This is useful for testing.
func NewLoaderWithDir(dir string) *Loader {
	return &Loader{confDir: dir}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppName
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName)
}

// DefaultStateDir returns the directory for mutable state (logs).
// Uses XDG_STATE_HOME if set, otherwise $HOME/.local/state.
func DefaultStateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppName
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, AppName)
}

// Dir returns the loader's config directory.
func (l *Loader) Dir() string {
	return l.confDir
}

// Load returns the merged configuration: defaults, then the config file,
// then the environment (later takes precedence). Returns an error wrapping
// domain.ErrMissingConfig when the gateway URL or API key is absent from
// every source; startup must fail fatally in that case.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	file, err := l.loadFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if file != nil {
		cfg.GatewayURL = strings.TrimRight(file.URL, "/")
		cfg.AnonKey = file.AnonKey
		if file.Log.Level != "" {
			cfg.Log.Level = file.Log.Level
		}
	}

	if v := os.Getenv(EnvGatewayURL); v != "" {
		cfg.GatewayURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv(EnvAnonKey); v != "" {
		cfg.AnonKey = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile reads and decodes the TOML config file.
func (l *Loader) loadFile() (*fileConfig, error) {
	path := filepath.Join(l.confDir, ConfigFileName)
	data, err := os.ReadFile(path) // #nosec G304 - path is derived from the config dir
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
