package timekeeper

import "time"

// Timer is a pending callback scheduled by a TimeSource.
type Timer interface {
	Stop() bool
}

// TimeSource provides the current time and delayed callbacks.
type TimeSource interface {
	Now() time.Time
	AfterFunc(delay time.Duration, fn func()) Timer
}

// SystemTime returns the production TimeSource.
//
// Now strips the monotonic reading so that time spent with the host asleep
// counts towards the running interval.
func SystemTime() TimeSource {
	return systemTime{}
}

type systemTime struct{}

func (systemTime) Now() time.Time {
	return time.Now().Round(0)
}

func (systemTime) AfterFunc(delay time.Duration, fn func()) Timer {
	return time.AfterFunc(delay, fn)
}
