// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Limits   LimitsConfig   `toml:"limits"`
	Practice PracticeConfig `toml:"practice"`
	Display  DisplayConfig  `toml:"display"`
}

// LimitsConfig maps the global operand bounds.
type LimitsConfig struct {
	Min *int `toml:"min"`
	Max *int `toml:"max"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	FirstMin       *int    `toml:"first-min"`
	FirstMax       *int    `toml:"first-max"`
	SecondMin      *int    `toml:"second-min"`
	SecondMax      *int    `toml:"second-max"`
	CorrectDelay   *string `toml:"correct-delay"`
	IncorrectDelay *string `toml:"incorrect-delay"`
	RetryLimit     *int    `toml:"retry-limit"`
}

// DisplayConfig maps the cosmetic text settings.
type DisplayConfig struct {
	Title             *string  `toml:"title"`
	CorrectFeedback   []string `toml:"correct-feedback"`
	IncorrectFeedback []string `toml:"incorrect-feedback"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
