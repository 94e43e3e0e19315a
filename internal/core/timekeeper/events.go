package timekeeper

import (
	"time"

	"littlepomo/internal/core/session"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventStateChange EventType = "state_change"
	EventComplete    EventType = "complete"
)

// Completion is a finished interval as seen by observers.
type Completion struct {
	session.Completion
	Skipped bool
}

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type              EventType
	Mode              session.Mode
	Running           bool
	Sample            session.Sample
	TotalSeconds      int
	SessionsCompleted int
	Completion        Completion
	At                time.Time
}
