package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config controls where and how the calculator persists history and
// settings.
type Config struct {
	// DataDir holds the persisted blobs (or the bolt database file).
	DataDir string `yaml:"data_dir" env:"TALLY_DATA_DIR"`

	// Backend selects the persistence backend: "file" or "bolt".
	Backend string `yaml:"backend" env:"TALLY_BACKEND"`
}

// defaultConfig returns the built-in configuration.
func defaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir: filepath.Join(home, ".tally"),
		Backend: "file",
	}
}

// loadConfig reads the optional YAML config file and applies environment
// overrides on top. A missing file is not an error; a malformed one is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.Backend {
	case "file", "bolt":
	default:
		return Config{}, fmt.Errorf("unknown backend %q (want file or bolt)", cfg.Backend)
	}

	return cfg, nil
}
