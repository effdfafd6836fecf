package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wasmsym/wasmsym/internal/constants"
)

// Loader handles loading configuration files.
type Loader struct {
	fs  afero.Fs
	dir string
}

// NewLoader creates a new config loader.
// The config directory is resolved in this order:
//  1. WASMSYM_CONFIG environment variable.
//  2. ~/.wasmsym
//
// Without a home directory the loader still works; it simply finds no file.
func NewLoader(fsys afero.Fs) *Loader {
	if dir := os.Getenv(constants.ConfigDirEnv); dir != "" {
		return &Loader{fs: fsys, dir: dir}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return &Loader{fs: fsys}
	}
	return &Loader{fs: fsys, dir: filepath.Join(home, constants.DefaultDir)}
}

// Path returns the path to the default config file, or "" when no config
// directory could be determined.
func (l *Loader) Path() string {
	if l.dir == "" {
		return ""
	}
	return filepath.Join(l.dir, constants.ConfigFile)
}

// Load reads the default config file. A missing file yields the defaults.
// Environment variable overrides are applied on top.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()
	if path := l.Path(); path != "" {
		if err := l.readInto(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return finish(cfg)
}

// LoadFile reads an explicitly named config file, which must exist.
// Environment variable overrides are applied on top.
func (l *Loader) LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := l.readInto(path, cfg); err != nil {
		return nil, err
	}
	return finish(cfg)
}

func (l *Loader) readInto(path string, cfg *Config) error {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	if err := MergeFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
