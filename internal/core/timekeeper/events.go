package timekeeper

import (
	"time"

	"lapwatch/internal/core/model"
)

// State represents whether the stopwatch is counting.
type State string

const (
	StateRunning State = "running"
	StateStopped State = "stopped"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventMark        EventType = "mark"
	EventReset       EventType = "reset"
	EventCleared     EventType = "cleared"
	EventSettings    EventType = "settings"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	State     State
	Elapsed   time.Duration
	Split     time.Duration
	Mark      model.Mark
	Mode      model.Mode
	Precision model.Precision
	At        time.Time
}
