//go:build darwin

package platform

import "path/filepath"

// Application Support is both config and data home on macOS.
func platformDataDir() string {
	return ""
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func fallbackDataDir(homeDir string) string {
	return fallbackConfigDir(homeDir)
}
