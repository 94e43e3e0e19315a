// Package session implements the interval clock at the heart of the timer.
//
// A Clock never reads the system time. Every operation that depends on time
// takes the caller's notion of "now", and elapsed time is always derived from
// the wall-clock anchor captured at the last Start rather than accumulated per
// frame. A single late Sample therefore yields the correct remaining time no
// matter how long the caller's scheduling was suspended.
package session

import "time"

// DurationProvider reports the configured length of each interval kind.
type DurationProvider interface {
	SecondsFor(mode Mode) int
}

// Sample is a point-in-time reading of the clock.
type Sample struct {
	ElapsedExact   time.Duration
	RemainingWhole int
	Finished       bool
}

// Completion describes an interval transition.
type Completion struct {
	Completed         Mode
	Next              Mode
	LongBreak         bool
	SessionsCompleted int
}

// State is a value snapshot of every clock field.
type State struct {
	Mode              Mode
	TotalSeconds      int
	RemainingSeconds  int
	Running           bool
	AnchorWallClock   time.Time
	AnchorRemaining   int
	SessionsCompleted int
}

// Clock is the interval state machine. The zero value is not usable; call New.
type Clock struct {
	durations         DurationProvider
	mode              Mode
	totalSeconds      int
	remainingSeconds  int
	running           bool
	anchorWallClock   time.Time
	anchorRemaining   int
	sessionsCompleted int
}

// New creates an idle clock in work mode armed with the full work duration.
func New(durations DurationProvider) *Clock {
	clock := &Clock{durations: durations}
	clock.load(ModeWork)
	return clock
}

// Start anchors the clock to now. Starting a running clock is a no-op.
func (clock *Clock) Start(now time.Time) {
	if clock.running {
		return
	}
	clock.anchorWallClock = now
	clock.anchorRemaining = clock.remainingSeconds
	clock.running = true
}

// Pause freezes the remaining time at the ceiling of the exact remaining
// seconds. Pausing an idle clock is a no-op.
func (clock *Clock) Pause(now time.Time) {
	if !clock.running {
		return
	}
	clock.remainingSeconds = clock.Sample(now).RemainingWhole
	clock.stop()
}

// Reset stops the clock and restarts the current interval from its full duration.
func (clock *Clock) Reset(now time.Time) {
	clock.Pause(now)
	clock.remainingSeconds = clock.totalSeconds
}

// Sample reads the clock at now without mutating it.
func (clock *Clock) Sample(now time.Time) Sample {
	total := seconds(clock.totalSeconds)
	if !clock.running {
		return Sample{
			ElapsedExact:   total - seconds(clock.remainingSeconds),
			RemainingWhole: clock.remainingSeconds,
		}
	}

	sinceAnchor := now.Sub(clock.anchorWallClock)
	if sinceAnchor < 0 {
		sinceAnchor = 0
	}
	elapsedTotal := total - seconds(clock.anchorRemaining) + sinceAnchor
	remainingExact := total - elapsedTotal
	if remainingExact <= 0 {
		return Sample{
			ElapsedExact:   total,
			RemainingWhole: 0,
			Finished:       true,
		}
	}
	return Sample{
		ElapsedExact:   elapsedTotal,
		RemainingWhole: ceilSeconds(remainingExact),
	}
}

// Skip stops the clock and completes the current interval immediately.
func (clock *Clock) Skip(now time.Time, longBreakInterval int) Completion {
	clock.Pause(now)
	return clock.Advance(longBreakInterval)
}

// Pending returns the Completion that Advance would produce, without mutating.
func (clock *Clock) Pending(longBreakInterval int) Completion {
	if clock.mode != ModeWork {
		return Completion{
			Completed:         clock.mode,
			Next:              ModeWork,
			SessionsCompleted: clock.sessionsCompleted,
		}
	}

	sessions := clock.sessionsCompleted + 1
	longBreak := longBreakInterval > 0 && sessions%longBreakInterval == 0
	next := ModeShortBreak
	if longBreak {
		next = ModeLongBreak
	}
	return Completion{
		Completed:         ModeWork,
		Next:              next,
		LongBreak:         longBreak,
		SessionsCompleted: sessions,
	}
}

// Advance applies the completion policy and arms the next interval, idle.
// Completing work bumps the session counter and picks a long break on every
// longBreakInterval-th session; completing any break returns to work.
func (clock *Clock) Advance(longBreakInterval int) Completion {
	completion := clock.Pending(longBreakInterval)
	clock.stop()
	clock.sessionsCompleted = completion.SessionsCompleted
	clock.load(completion.Next)
	return completion
}

// SetMode stops the clock and arms a full interval of the given mode.
func (clock *Clock) SetMode(mode Mode) {
	clock.stop()
	clock.load(mode)
}

// SetDurations replaces the duration source, stops the clock and re-arms the
// current mode with its new full duration.
func (clock *Clock) SetDurations(durations DurationProvider) {
	clock.durations = durations
	clock.stop()
	clock.load(clock.mode)
}

// Mode returns the active interval kind.
func (clock *Clock) Mode() Mode {
	return clock.mode
}

// Running reports whether the clock is anchored to the wall clock.
func (clock *Clock) Running() bool {
	return clock.running
}

// TotalSeconds returns the full duration of the current interval.
func (clock *Clock) TotalSeconds() int {
	return clock.totalSeconds
}

// SessionsCompleted returns the number of completed work intervals.
func (clock *Clock) SessionsCompleted() int {
	return clock.sessionsCompleted
}

// State returns a snapshot of the clock.
func (clock *Clock) State() State {
	return State{
		Mode:              clock.mode,
		TotalSeconds:      clock.totalSeconds,
		RemainingSeconds:  clock.remainingSeconds,
		Running:           clock.running,
		AnchorWallClock:   clock.anchorWallClock,
		AnchorRemaining:   clock.anchorRemaining,
		SessionsCompleted: clock.sessionsCompleted,
	}
}

func (clock *Clock) stop() {
	clock.running = false
	clock.anchorWallClock = time.Time{}
	clock.anchorRemaining = 0
}

func (clock *Clock) load(mode Mode) {
	total := 0
	if clock.durations != nil {
		total = clock.durations.SecondsFor(mode)
	}
	// Sample assumes totalSeconds >= 1.
	if total < 1 {
		total = 1
	}
	clock.mode = mode
	clock.totalSeconds = total
	clock.remainingSeconds = total
}

func seconds(value int) time.Duration {
	return time.Duration(value) * time.Second
}

func ceilSeconds(value time.Duration) int {
	whole := value / time.Second
	if value%time.Second > 0 {
		whole++
	}
	return int(whole)
}
