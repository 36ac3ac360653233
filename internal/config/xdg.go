// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// ConfigPathEnv overrides the config file location.
const ConfigPathEnv = "TIMESTABLE_CONFIG"

// LogFileEnv names a file that receives debug logs.
const LogFileEnv = "TIMESTABLE_LOG_FILE"

const appDir = "timestable"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the TOML config path, honouring ConfigPathEnv.
func DefaultConfigPath() string {
	if v := os.Getenv(ConfigPathEnv); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}
