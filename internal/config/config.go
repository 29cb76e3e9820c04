package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user defaults applied when flags are not set.
type Config struct {
	Model     string `yaml:"model"`
	Budget    int    `yaml:"budget"`
	Strategy  string `yaml:"strategy"`
	CountMode string `yaml:"count_mode"`
	Delimiter string `yaml:"delimiter"`
	OutDir    string `yaml:"out_dir"`
	DBPath    string `yaml:"db_path"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Budget:    1000,
		Strategy:  "paragraph",
		CountMode: "line",
		Delimiter: ",",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tokensplit", "config.yaml")
}

// Load reads the config file at path, layering it over the built-in
// defaults. A missing file yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Budget <= 0 {
		cfg.Budget = 1000
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "paragraph"
	}
	if cfg.CountMode == "" {
		cfg.CountMode = "line"
	}
	if cfg.Delimiter == "" {
		cfg.Delimiter = ","
	}

	return cfg, nil
}
