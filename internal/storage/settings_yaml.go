package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"littlepomo/internal/ui/preferences"
	"littlepomo/internal/ui/theme"
)

// SettingsFileName is the settings file inside the config directory.
const SettingsFileName = "settings.yaml"

// Pointer fields distinguish a missing key from an explicit zero/false.
type yamlSettings struct {
	PomoMinutes          *int    `yaml:"pomo_minutes,omitempty"`
	ShortBreakMinutes    *int    `yaml:"short_break_minutes,omitempty"`
	LongBreakMinutes     *int    `yaml:"long_break_minutes,omitempty"`
	LongBreakInterval    *int    `yaml:"long_break_interval,omitempty"`
	AutoStartBreaks      *bool   `yaml:"auto_start_breaks,omitempty"`
	AutoStartPomos       *bool   `yaml:"auto_start_pomos,omitempty"`
	NotificationsEnabled *bool   `yaml:"notifications_enabled,omitempty"`
	Theme                *string `yaml:"theme,omitempty"`
	Appearance           *string `yaml:"appearance,omitempty"`
}

// SettingsPath returns the settings file location inside configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, SettingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned. A file that
// cannot be parsed also yields defaults, together with the parse error.
// Keys present in the file override defaults; values are clamped.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Clamp(), nil
}

// SaveSettings writes user preferences to YAML. The file is replaced
// atomically so a concurrent reader never sees a partial document.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Clamp()
	pomo := int(settings.Pomo / time.Minute)
	shortBreak := int(settings.ShortBreak / time.Minute)
	longBreak := int(settings.LongBreak / time.Minute)
	appearance := string(settings.Appearance)

	fileData := yamlSettings{
		PomoMinutes:          &pomo,
		ShortBreakMinutes:    &shortBreak,
		LongBreakMinutes:     &longBreak,
		LongBreakInterval:    &settings.LongBreakInterval,
		AutoStartBreaks:      &settings.AutoStartBreaks,
		AutoStartPomos:       &settings.AutoStartPomos,
		NotificationsEnabled: &settings.NotificationsEnabled,
		Theme:                &settings.Theme,
		Appearance:           &appearance,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(serialized); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.PomoMinutes != nil {
		settings.Pomo = time.Duration(*fileData.PomoMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes != nil {
		settings.ShortBreak = time.Duration(*fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes != nil {
		settings.LongBreak = time.Duration(*fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.LongBreakInterval != nil {
		settings.LongBreakInterval = *fileData.LongBreakInterval
	}

	if fileData.AutoStartBreaks != nil {
		settings.AutoStartBreaks = *fileData.AutoStartBreaks
	}
	if fileData.AutoStartPomos != nil {
		settings.AutoStartPomos = *fileData.AutoStartPomos
	}
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.Theme != nil {
		settings.Theme = *fileData.Theme
	}
	if fileData.Appearance != nil {
		settings.Appearance = theme.Appearance(*fileData.Appearance)
	}
}
