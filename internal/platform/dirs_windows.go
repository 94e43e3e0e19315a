//go:build windows

package platform

import (
	"os"
	"path/filepath"
)

func platformDataDir() string {
	return os.Getenv("LocalAppData")
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func fallbackDataDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Local")
}
