package preferences

import (
	"time"

	"littlepomo/internal/core/model"
	"littlepomo/internal/ui/theme"
)

// Bounds of the editable durations, in minutes, and of the long break interval.
const (
	MinPomoMinutes       = 1
	MaxPomoMinutes       = 90
	MinShortBreakMinutes = 1
	MaxShortBreakMinutes = 30
	MinLongBreakMinutes  = 1
	MaxLongBreakMinutes  = 60
	MinLongBreakInterval = 2
	MaxLongBreakInterval = 10
)

// Settings defines editable user preferences.
type Settings struct {
	Pomo              time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	LongBreakInterval int
	AutoStartBreaks   bool
	AutoStartPomos    bool

	NotificationsEnabled bool
	Theme                string
	Appearance           theme.Appearance
}

// DefaultSettings returns default settings for Little Pomo.
func DefaultSettings() Settings {
	return Settings{
		Pomo:              25 * time.Minute,
		ShortBreak:        5 * time.Minute,
		LongBreak:         15 * time.Minute,
		LongBreakInterval: 4,
		Theme:             theme.DefaultPalette,
		Appearance:        theme.AppearanceDark,
	}
}

// Clamp forces every field into range. Durations are truncated to whole
// minutes; a zero value takes the default before clamping.
func (settings Settings) Clamp() Settings {
	defaults := DefaultSettings()

	settings.Pomo = clampMinutes(settings.Pomo, defaults.Pomo, MinPomoMinutes, MaxPomoMinutes)
	settings.ShortBreak = clampMinutes(settings.ShortBreak, defaults.ShortBreak, MinShortBreakMinutes, MaxShortBreakMinutes)
	settings.LongBreak = clampMinutes(settings.LongBreak, defaults.LongBreak, MinLongBreakMinutes, MaxLongBreakMinutes)
	settings.LongBreakInterval = clampInt(settings.LongBreakInterval, defaults.LongBreakInterval, MinLongBreakInterval, MaxLongBreakInterval)

	if !theme.Known(settings.Theme) {
		settings.Theme = defaults.Theme
	}
	settings.Appearance = theme.ParseAppearance(string(settings.Appearance))
	return settings
}

// TimeKeeperConfig converts settings to TimeKeeperConfig.
func (settings Settings) TimeKeeperConfig() model.TimeKeeperConfig {
	return model.TimeKeeperConfig{
		Durations: model.Durations{
			Work:       settings.Pomo,
			ShortBreak: settings.ShortBreak,
			LongBreak:  settings.LongBreak,
		},
		LongBreakInterval: settings.LongBreakInterval,
		AutoStartBreaks:   settings.AutoStartBreaks,
		AutoStartPomos:    settings.AutoStartPomos,
	}
}

// TimingChanged reports whether other differs in anything the timekeeper
// consumes. Theme and notification changes leave the running interval alone.
func (settings Settings) TimingChanged(other Settings) bool {
	return settings.TimeKeeperConfig() != other.TimeKeeperConfig()
}

// ToggleAppearance flips between the dark and light environments.
func (settings Settings) ToggleAppearance() Settings {
	if settings.Appearance == theme.AppearanceLight {
		settings.Appearance = theme.AppearanceDark
	} else {
		settings.Appearance = theme.AppearanceLight
	}
	return settings
}

func clampMinutes(value, fallback time.Duration, lower, upper int) time.Duration {
	minutes := int(value / time.Minute)
	if value == 0 {
		minutes = int(fallback / time.Minute)
	}
	return time.Duration(clampInt(minutes, minutes, lower, upper)) * time.Minute
}

func clampInt(value, fallback, lower, upper int) int {
	if value == 0 {
		value = fallback
	}
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}
