package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "FORCEGRAPH_CONFIG"

	// ConfigDirName is the config directory name under XDG.
	ConfigDirName = "forcegraph"
)

// LocalFileNames are searched in the working directory, in order.
var LocalFileNames = []string{"forcegraph.toml", "forcegraph.yaml", "forcegraph.yml"}

// FindConfigPath searches for a config file in priority order:
//  1. $FORCEGRAPH_CONFIG
//  2. ./forcegraph.toml, ./forcegraph.yaml, ./forcegraph.yml
//  3. $XDG_CONFIG_HOME/forcegraph/config.toml
//  4. ~/.config/forcegraph/config.toml
//
// An explicit $FORCEGRAPH_CONFIG is returned even when the file is missing,
// so that loading it fails instead of silently falling back to another file.
// Returns an empty string if no config file is found.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}

	for _, name := range LocalFileNames {
		if fileExists(name) {
			if abs, err := filepath.Abs(name); err == nil {
				return abs
			}
			return name
		}
	}

	if path := DefaultConfigPath(); path != "" && fileExists(path) {
		return path
	}
	return ""
}

// DefaultConfigPath returns the preferred location for a user config file.
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", ConfigDirName, "config.toml")
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
