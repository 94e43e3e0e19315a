package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fixedDurations map[Mode]int

func (durations fixedDurations) SecondsFor(mode Mode) int {
	return durations[mode]
}

func defaultDurations() fixedDurations {
	return fixedDurations{
		ModeWork:       1500,
		ModeShortBreak: 300,
		ModeLongBreak:  900,
	}
}

var epoch = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestNew_StartsIdleInWorkMode(t *testing.T) {
	clock := New(defaultDurations())

	require.Equal(t, ModeWork, clock.Mode())
	require.False(t, clock.Running())
	require.Equal(t, 1500, clock.TotalSeconds())
	require.Equal(t, Sample{RemainingWhole: 1500}, clock.Sample(epoch))
}

func TestNew_RaisesEmptyDurationsToOneSecond(t *testing.T) {
	clock := New(fixedDurations{})

	require.Equal(t, 1, clock.TotalSeconds())
	clock.SetDurations(nil)
	require.Equal(t, 1, clock.TotalSeconds())
}

func TestSample_RoundsRemainingUp(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)

	sample := clock.Sample(epoch.Add(500 * time.Millisecond))
	require.Equal(t, 1500, sample.RemainingWhole)
	require.Equal(t, 500*time.Millisecond, sample.ElapsedExact)
	require.False(t, sample.Finished)

	sample = clock.Sample(epoch.Add(time.Second))
	require.Equal(t, 1499, sample.RemainingWhole)

	sample = clock.Sample(epoch.Add(1499*time.Second + time.Millisecond))
	require.Equal(t, 1, sample.RemainingWhole)
	require.False(t, sample.Finished)
}

func TestSample_FinishesExactlyAtZero(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)

	sample := clock.Sample(epoch.Add(1500 * time.Second))
	require.Equal(t, Sample{ElapsedExact: 1500 * time.Second, RemainingWhole: 0, Finished: true}, sample)
}

func TestSample_LateResumeReportsFinished(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)

	sample := clock.Sample(epoch.Add(1500*time.Second + 5*time.Second))
	require.True(t, sample.Finished)
	require.Equal(t, 0, sample.RemainingWhole)
	require.Equal(t, 1500*time.Second, sample.ElapsedExact)
}

func TestSample_BackwardsWallClockTreatedAsZeroElapsed(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)

	sample := clock.Sample(epoch.Add(-time.Minute))
	require.Equal(t, Sample{RemainingWhole: 1500}, sample)
}

func TestSample_DoesNotMutate(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)
	before := clock.State()

	clock.Sample(epoch.Add(10 * time.Minute))
	clock.Sample(epoch.Add(30 * time.Minute))

	require.Equal(t, before, clock.State())
}

func TestPause_SnapshotsCeilingAndResumeContinues(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)
	clock.Pause(epoch.Add(100*time.Second + 250*time.Millisecond))

	require.False(t, clock.Running())
	require.Equal(t, 1400, clock.State().RemainingSeconds)
	require.True(t, clock.State().AnchorWallClock.IsZero())

	// Idle time between pause and resume does not count.
	resumeAt := epoch.Add(time.Hour)
	clock.Start(resumeAt)
	sample := clock.Sample(resumeAt.Add(10 * time.Second))
	require.Equal(t, 1390, sample.RemainingWhole)
	require.Equal(t, 110*time.Second, sample.ElapsedExact)
}

func TestPause_AfterExpiryFreezesAtZero(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)
	clock.Pause(epoch.Add(2 * time.Hour))

	require.Equal(t, Sample{ElapsedExact: 1500 * time.Second, RemainingWhole: 0}, clock.Sample(epoch.Add(3*time.Hour)))
}

func TestStartAndPause_AreIdempotent(t *testing.T) {
	clock := New(defaultDurations())

	clock.Start(epoch)
	once := clock.State()
	clock.Start(epoch.Add(time.Minute))
	require.Equal(t, once, clock.State())

	clock.Pause(epoch.Add(2 * time.Minute))
	paused := clock.State()
	clock.Pause(epoch.Add(3 * time.Minute))
	require.Equal(t, paused, clock.State())
}

func TestReset_RestoresFullDuration(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)
	clock.Reset(epoch.Add(7 * time.Minute))

	require.False(t, clock.Running())
	for _, offset := range []time.Duration{0, time.Second, time.Hour} {
		sample := clock.Sample(epoch.Add(offset))
		require.Equal(t, 1500, sample.RemainingWhole)
		require.Zero(t, sample.ElapsedExact)
	}
}

func TestAdvance_LongBreakCadence(t *testing.T) {
	clock := New(defaultDurations())
	var breaks []Mode

	for range 8 {
		completion := clock.Advance(4)
		require.Equal(t, ModeWork, completion.Completed)
		breaks = append(breaks, completion.Next)
		require.Equal(t, completion.Next, clock.Mode())

		completion = clock.Advance(4)
		require.Equal(t, ModeWork, completion.Next)
		require.False(t, completion.LongBreak)
	}

	require.Equal(t, []Mode{
		ModeShortBreak, ModeShortBreak, ModeShortBreak, ModeLongBreak,
		ModeShortBreak, ModeShortBreak, ModeShortBreak, ModeLongBreak,
	}, breaks)
	require.Equal(t, 8, clock.SessionsCompleted())
}

func TestAdvance_RearmsIdleWithFullDuration(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)

	completion := clock.Advance(4)

	require.Equal(t, Completion{Completed: ModeWork, Next: ModeShortBreak, SessionsCompleted: 1}, completion)
	require.False(t, clock.Running())
	require.Equal(t, 300, clock.TotalSeconds())
	require.Equal(t, Sample{RemainingWhole: 300}, clock.Sample(epoch.Add(time.Hour)))
}

func TestAdvance_BreakDoesNotCountSession(t *testing.T) {
	clock := New(defaultDurations())
	clock.SetMode(ModeLongBreak)

	completion := clock.Advance(4)

	require.Equal(t, Completion{Completed: ModeLongBreak, Next: ModeWork}, completion)
	require.Equal(t, 0, clock.SessionsCompleted())
}

func TestPending_MatchesAdvanceWithoutMutating(t *testing.T) {
	clock := New(defaultDurations())
	for range 3 {
		clock.Advance(4)
		clock.Advance(4)
	}
	before := clock.State()

	pending := clock.Pending(4)
	require.Equal(t, before, clock.State())
	require.True(t, pending.LongBreak)

	require.Equal(t, pending, clock.Advance(4))
}

func TestSkip_CompletesRegardlessOfRemaining(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)

	completion := clock.Skip(epoch.Add(3*time.Second), 4)

	require.Equal(t, ModeWork, completion.Completed)
	require.Equal(t, ModeShortBreak, clock.Mode())
	require.Equal(t, 1, clock.SessionsCompleted())
	require.False(t, clock.Running())
}

func TestSetModeAndSetDurations_RoundTrip(t *testing.T) {
	clock := New(defaultDurations())
	clock.Start(epoch)
	now := epoch.Add(42 * time.Second)

	clock.SetMode(ModeLongBreak)
	sample := clock.Sample(now)
	require.False(t, clock.Running())
	require.Equal(t, 900, sample.RemainingWhole)
	require.Zero(t, sample.ElapsedExact)

	clock.Start(now)
	clock.SetDurations(fixedDurations{ModeWork: 60, ModeShortBreak: 60, ModeLongBreak: 1200})
	sample = clock.Sample(now)
	require.Equal(t, ModeLongBreak, clock.Mode())
	require.Equal(t, 1200, sample.RemainingWhole)
	require.Zero(t, sample.ElapsedExact)
}

func TestSample_NoDriftProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		total := rapid.IntRange(1, 90*60).Draw(r, "total")
		durations := fixedDurations{ModeWork: total, ModeShortBreak: 60, ModeLongBreak: 60}
		offsetMillis := rapid.Int64Range(0, int64(total)*1000+10_000).Draw(r, "offsetMillis")
		now := epoch.Add(time.Duration(offsetMillis) * time.Millisecond)

		reference := New(durations)
		reference.Start(epoch)
		want := reference.Sample(now)

		sampled := New(durations)
		sampled.Start(epoch)
		earlier := rapid.SliceOfN(rapid.Int64Range(0, offsetMillis), 0, 50).Draw(r, "earlier")
		for _, millis := range earlier {
			sampled.Sample(epoch.Add(time.Duration(millis) * time.Millisecond))
		}
		calls := rapid.IntRange(1, 1000).Draw(r, "calls")
		var got Sample
		for range calls {
			got = sampled.Sample(now)
		}

		require.Equal(r, want, got)
		require.Equal(r, want.Finished, want.RemainingWhole == 0)
		require.GreaterOrEqual(r, want.RemainingWhole, 0)
		require.LessOrEqual(r, want.RemainingWhole, total)
	})
}

func TestReset_RestoresFullDurationProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		total := rapid.IntRange(1, 90*60).Draw(r, "total")
		clock := New(fixedDurations{ModeWork: total, ModeShortBreak: 60, ModeLongBreak: 60})

		now := epoch
		steps := rapid.SliceOfN(rapid.IntRange(0, 2), 0, 20).Draw(r, "steps")
		for _, step := range steps {
			now = now.Add(time.Duration(rapid.Int64Range(0, 600_000).Draw(r, "advanceMillis")) * time.Millisecond)
			switch step {
			case 0:
				clock.Start(now)
			case 1:
				clock.Pause(now)
			case 2:
				clock.Sample(now)
			}
		}

		clock.Reset(now)
		later := now.Add(time.Duration(rapid.Int64Range(0, 3_600_000).Draw(r, "laterMillis")) * time.Millisecond)
		sample := clock.Sample(later)
		require.Equal(r, total, sample.RemainingWhole)
		require.Zero(r, sample.ElapsedExact)
		require.False(r, sample.Finished)
	})
}

func TestPauseResume_IdempotenceProperty(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		clock := New(defaultDurations())
		start := epoch.Add(time.Duration(rapid.Int64Range(0, 1_000_000).Draw(r, "startMillis")) * time.Millisecond)
		clock.Start(start)
		afterStart := clock.State()
		clock.Start(start.Add(time.Duration(rapid.Int64Range(0, 1_000_000).Draw(r, "restartMillis")) * time.Millisecond))
		require.Equal(r, afterStart, clock.State())

		pauseAt := start.Add(time.Duration(rapid.Int64Range(0, 2_000_000).Draw(r, "pauseMillis")) * time.Millisecond)
		clock.Pause(pauseAt)
		afterPause := clock.State()
		clock.Pause(pauseAt.Add(time.Duration(rapid.Int64Range(0, 1_000_000).Draw(r, "repauseMillis")) * time.Millisecond))
		require.Equal(r, afterPause, clock.State())
	})
}

func TestParseMode(t *testing.T) {
	for _, mode := range Modes() {
		parsed, err := ParseMode(string(mode))
		require.NoError(t, err)
		require.Equal(t, mode, parsed)
	}

	_, err := ParseMode("nap")
	require.ErrorIs(t, err, ErrUnknownMode)
}

func TestMode_LabelAndIsBreak(t *testing.T) {
	require.Equal(t, "Pomo", ModeWork.Label())
	require.Equal(t, "Short Break", ModeShortBreak.Label())
	require.Equal(t, "Long Break", ModeLongBreak.Label())
	require.False(t, ModeWork.IsBreak())
	require.True(t, ModeShortBreak.IsBreak())
	require.True(t, ModeLongBreak.IsBreak())
}
