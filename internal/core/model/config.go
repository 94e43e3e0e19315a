package model

import (
	"time"

	"littlepomo/internal/core/session"
)

// Durations holds the length of each interval kind.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// TimeKeeperConfig contains runtime settings for the TimeKeeper state machine.
type TimeKeeperConfig struct {
	Durations Durations

	LongBreakInterval int
	AutoStartBreaks   bool
	AutoStartPomos    bool
}

// SecondsFor returns the configured duration of mode in whole seconds.
func (config TimeKeeperConfig) SecondsFor(mode session.Mode) int {
	var duration time.Duration
	switch mode {
	case session.ModeWork:
		duration = config.Durations.Work
	case session.ModeShortBreak:
		duration = config.Durations.ShortBreak
	case session.ModeLongBreak:
		duration = config.Durations.LongBreak
	}
	return int(duration / time.Second)
}

// AutoStartFor reports whether entering mode after a natural completion
// should start the clock on its own.
func (config TimeKeeperConfig) AutoStartFor(mode session.Mode) bool {
	if mode == session.ModeWork {
		return config.AutoStartPomos
	}
	return config.AutoStartBreaks
}
