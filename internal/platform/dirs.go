package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyAppName is returned when a directory is requested for no app.
var ErrEmptyAppName = errors.New("app name is empty")

// Dirs holds the per-user directories the application writes to.
type Dirs struct {
	Config string
	Data   string
}

// ResolveDirs returns the application's config and data directories. A
// non-empty override replaces the OS default for that directory.
func ResolveDirs(appName, configOverride, dataOverride string) (Dirs, error) {
	name := strings.TrimSpace(appName)
	if name == "" {
		return Dirs{}, fmt.Errorf("resolve dirs: %w", ErrEmptyAppName)
	}

	dirs := Dirs{Config: configOverride, Data: dataOverride}
	if dirs.Config == "" {
		base, err := configDir()
		if err != nil {
			return Dirs{}, fmt.Errorf("resolve dirs: %w", err)
		}
		dirs.Config = filepath.Join(base, name)
	}
	if dirs.Data == "" {
		base, err := dataDir()
		if err != nil {
			return Dirs{}, fmt.Errorf("resolve dirs: %w", err)
		}
		dirs.Data = filepath.Join(base, name)
	}
	return dirs, nil
}

// Ensure creates both directories.
func (dirs Dirs) Ensure() error {
	for _, dir := range []string{dirs.Config, dirs.Data} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// configDir returns the OS-standard configuration directory.
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err == nil && dir != "" {
		return dir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// dataDir returns the OS-standard directory for application data.
func dataDir() (string, error) {
	if dir := platformDataDir(); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get data dir: %w", err)
	}
	return fallbackDataDir(homeDir), nil
}
