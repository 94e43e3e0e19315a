package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"littlepomo/internal/core/session"
)

func TestTimeKeeperConfig_SecondsFor(t *testing.T) {
	config := TimeKeeperConfig{
		Durations: Durations{
			Work:       25 * time.Minute,
			ShortBreak: 5 * time.Minute,
			LongBreak:  15 * time.Minute,
		},
	}

	require.Equal(t, 1500, config.SecondsFor(session.ModeWork))
	require.Equal(t, 300, config.SecondsFor(session.ModeShortBreak))
	require.Equal(t, 900, config.SecondsFor(session.ModeLongBreak))
	require.Equal(t, 0, config.SecondsFor(session.Mode("nap")))
}

func TestTimeKeeperConfig_AutoStartFor(t *testing.T) {
	config := TimeKeeperConfig{AutoStartPomos: true}
	require.True(t, config.AutoStartFor(session.ModeWork))
	require.False(t, config.AutoStartFor(session.ModeShortBreak))
	require.False(t, config.AutoStartFor(session.ModeLongBreak))

	config = TimeKeeperConfig{AutoStartBreaks: true}
	require.False(t, config.AutoStartFor(session.ModeWork))
	require.True(t, config.AutoStartFor(session.ModeShortBreak))
	require.True(t, config.AutoStartFor(session.ModeLongBreak))
}
