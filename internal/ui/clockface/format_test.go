package clockface

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"littlepomo/internal/core/session"
)

func TestFormatTime(t *testing.T) {
	require.Equal(t, "25:00", FormatTime(1500))
	require.Equal(t, "24:59", FormatTime(1499))
	require.Equal(t, "00:01", FormatTime(1))
	require.Equal(t, "00:00", FormatTime(0))
	require.Equal(t, "00:00", FormatTime(-3))
	require.Equal(t, "90:00", FormatTime(5400))
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Little Pomo", Title(session.ModeWork, false))
	require.Equal(t, "Pomo In Progress... — Little Pomo", Title(session.ModeWork, true))
	require.Equal(t, "Short Break In Progress... — Little Pomo", Title(session.ModeShortBreak, true))
	require.Equal(t, "Long Break In Progress... — Little Pomo", Title(session.ModeLongBreak, true))
}

func TestHandAngles(t *testing.T) {
	minute, second := HandAngles(0, 1500)
	require.Zero(t, minute)
	require.Zero(t, second)

	minute, second = HandAngles(750*time.Second, 1500)
	require.InDelta(t, 180, minute, 1e-9)
	require.InDelta(t, 180, second, 1e-9)

	minute, second = HandAngles(1500*time.Second, 1500)
	require.InDelta(t, 360, minute, 1e-9)
	require.InDelta(t, 0, second, 1e-9)

	minute, second = HandAngles(15*time.Second+500*time.Millisecond, 60)
	require.InDelta(t, 93, minute, 1e-9)
	require.InDelta(t, 93, second, 1e-9)

	minute, second = HandAngles(time.Second, 0)
	require.Zero(t, minute)
	require.Zero(t, second)
}

func TestProgressFraction(t *testing.T) {
	require.InDelta(t, 1, ProgressFraction(0, 300), 1e-9)
	require.InDelta(t, 0.5, ProgressFraction(150*time.Second, 300), 1e-9)
	require.InDelta(t, 0, ProgressFraction(300*time.Second, 300), 1e-9)
	require.InDelta(t, 0, ProgressFraction(400*time.Second, 300), 1e-9)
	require.Zero(t, ProgressFraction(time.Second, 0))
}

func TestFilledDots(t *testing.T) {
	require.Equal(t, 0, FilledDots(0, 4))
	require.Equal(t, 3, FilledDots(3, 4))
	require.Equal(t, 0, FilledDots(4, 4))
	require.Equal(t, 1, FilledDots(5, 4))
	require.Equal(t, 0, FilledDots(5, 0))
}
