package clockface

import (
	"fmt"
	"math"
	"time"

	"littlepomo/internal/core/session"
)

// AppTitle is the window title while no interval runs.
const AppTitle = "Little Pomo"

// FormatTime renders whole seconds as MM:SS. Negative values show 00:00.
func FormatTime(remainingWhole int) string {
	if remainingWhole < 0 {
		remainingWhole = 0
	}
	return fmt.Sprintf("%02d:%02d", remainingWhole/60, remainingWhole%60)
}

// Title is the window title for the given state.
func Title(mode session.Mode, running bool) string {
	if !running {
		return AppTitle
	}
	return mode.Label() + " In Progress... — " + AppTitle
}

// HandAngles returns the minute and second hand angles in degrees, clockwise
// from twelve. The minute hand sweeps once per interval; the second hand once
// per elapsed minute.
func HandAngles(elapsed time.Duration, totalSeconds int) (minute, second float64) {
	if totalSeconds <= 0 {
		return 0, 0
	}
	elapsedSeconds := elapsed.Seconds()
	minute = elapsedSeconds / float64(totalSeconds) * 360
	second = math.Mod(elapsedSeconds, 60) / 60 * 360
	return minute, second
}

// ProgressFraction is the share of the interval still remaining, floored at 0.
func ProgressFraction(elapsed time.Duration, totalSeconds int) float64 {
	if totalSeconds <= 0 {
		return 0
	}
	total := float64(totalSeconds)
	return math.Max(0, (total-elapsed.Seconds())/total)
}

// FilledDots is the number of session dots lit before the next long break.
func FilledDots(sessionsCompleted, longBreakInterval int) int {
	if longBreakInterval <= 0 {
		return 0
	}
	return sessionsCompleted % longBreakInterval
}
