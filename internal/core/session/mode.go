package session

import (
	"errors"
	"fmt"
)

// ErrUnknownMode indicates a mode name that is not one of the interval kinds.
var ErrUnknownMode = errors.New("unknown mode")

// Mode identifies the kind of interval being timed.
type Mode string

const (
	ModeWork       Mode = "pomo"
	ModeShortBreak Mode = "short"
	ModeLongBreak  Mode = "long"
)

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeWork, ModeShortBreak, ModeLongBreak}
}

// ParseMode converts a persisted or user-supplied name into a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return Mode(value), nil
	}
	return "", fmt.Errorf("parse mode %q: %w", value, ErrUnknownMode)
}

// IsBreak reports whether the mode is a short or long break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// Label returns the human-readable name of the mode.
func (mode Mode) Label() string {
	switch mode {
	case ModeWork:
		return "Pomo"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(mode)
	}
}
