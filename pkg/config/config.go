// Package config manages the optional TOML file holding librank's CLI
// defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds defaults applied when the matching flags are not set on the
// command line.
type Config struct {
	Format  string `toml:"format"`
	KeyType string `toml:"key_type"`
	Locale  string `toml:"locale"`
	TopN    int    `toml:"top_n"`
}

// Default returns the builtin defaults.
func Default() *Config {
	return &Config{
		Format:  "text",
		KeyType: "auto",
	}
}

// DefaultPath returns ~/.librank/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".librank", "config.toml"), nil
}

// Load reads a config file. Keys absent from the file keep their builtin
// defaults; keys the file invents are an error.
func Load(path string) (*Config, error) {
	config := Default()
	meta, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("cannot load config from %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in config %s", undecoded[0].String(), path)
	}
	return config, nil
}

// LoadWithPriority resolves the effective config:
// 1. Custom path from the --config flag (must load)
// 2. Default path, when the file exists
// 3. Builtin defaults
func LoadWithPriority(customPath string) (*Config, error) {
	if customPath != "" {
		return Load(customPath)
	}

	defaultPath, err := DefaultPath()
	if err != nil {
		slog.Debug("cannot determine default config path", "error", err)
		return Default(), nil
	}
	if _, err := os.Stat(defaultPath); err != nil {
		return Default(), nil
	}
	return Load(defaultPath)
}
