package platform

import (
	"context"
	"time"
)

const (
	defaultWakePoll      = 2 * time.Second
	defaultWakeThreshold = 5 * time.Second
)

// WakeDetector reports host suspend/resume. Go timers run on the monotonic
// clock, which stops while the host sleeps on most systems; the wall clock
// does not. A poll whose wall-clock gap exceeds its monotonic gap by more than
// Threshold means the host was asleep.
type WakeDetector struct {
	Poll      time.Duration
	Threshold time.Duration
	now       func() time.Time
}

// NewWakeDetector returns a detector with default polling.
func NewWakeDetector() *WakeDetector {
	return &WakeDetector{
		Poll:      defaultWakePoll,
		Threshold: defaultWakeThreshold,
		now:       time.Now,
	}
}

// Run polls until ctx is done, calling onWake after each detected suspension.
func (detector *WakeDetector) Run(ctx context.Context, onWake func()) {
	poll := detector.Poll
	if poll <= 0 {
		poll = defaultWakePoll
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	last := detector.now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := detector.now()
			if detector.suspended(last, current) && onWake != nil {
				onWake()
			}
			last = current
		}
	}
}

// suspended compares the wall-clock and monotonic distance between readings.
func (detector *WakeDetector) suspended(previous, current time.Time) bool {
	return detector.exceeds(current.Round(0).Sub(previous.Round(0)), current.Sub(previous))
}

func (detector *WakeDetector) exceeds(wall, monotonic time.Duration) bool {
	threshold := detector.Threshold
	if threshold <= 0 {
		threshold = defaultWakeThreshold
	}
	return wall-monotonic > threshold
}
