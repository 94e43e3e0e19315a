//go:build linux

package platform

import (
	"os"
	"path/filepath"
)

func platformDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(dir) {
		return dir
	}
	return ""
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func fallbackDataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share")
}
