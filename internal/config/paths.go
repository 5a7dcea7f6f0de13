// Package config handles configuration loading and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppDirName is the name of the workstyle directory under the XDG config home.
	AppDirName = "workstyle"
)

// File names
const (
	ConfigFileName = "config.yaml"
	PIDFileName    = "workstyle.pid"
)

// ConfigDir returns the path to the workstyle config directory
// ($XDG_CONFIG_HOME/workstyle, or ~/.config/workstyle).
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// DefaultConfigFile returns the path to the default config.yaml file.
func DefaultConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// ResolveConfigFile returns override when set, else the default config path.
func ResolveConfigFile(override string) (string, error) {
	if override != "" {
		return filepath.Abs(override)
	}
	return DefaultConfigFile()
}

// RuntimeDir returns $XDG_RUNTIME_DIR, falling back to the system temp dir.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// PIDFile returns the path to the daemon's pid file.
func PIDFile() string {
	return filepath.Join(RuntimeDir(), PIDFileName)
}
