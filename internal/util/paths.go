package util

import (
	"os"
	"path/filepath"
)

const appName = "ragterm"

// ConfigDir returns $XDG_CONFIG_HOME/ragterm, falling back to ~/.config/ragterm.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(homeDir(), ".config", appName)
}

// StateDir is where the log file goes.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(homeDir(), ".local", "state", appName)
}

// ExportDir mirrors the ~/.<app>/exports layout used for run exports.
func ExportDir() string {
	return filepath.Join(homeDir(), "."+appName, "exports")
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}
