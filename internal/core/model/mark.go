package model

import "time"

// Mark is one recorded lap or split entry.
type Mark struct {
	Number     int
	Value      time.Duration
	Total      time.Duration
	Diff       time.Duration
	HasDiff    bool
	Mode       Mode
	RecordedAt time.Time
}

// Statistics aggregates the values of recorded marks.
type Statistics struct {
	Count      int
	Sum        time.Duration
	Average    time.Duration
	Best       time.Duration
	Worst      time.Duration
	BestIndex  int
	WorstIndex int
}

// Snapshot is the persisted state of a stopwatch session.
type Snapshot struct {
	ID        string
	Elapsed   time.Duration
	Anchor    time.Duration
	Mode      Mode
	Precision Precision
	Marks     []Mark
	Running   bool
	SavedAt   time.Time
}

// DefaultSnapshot returns the state of a fresh session.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Mode:      ModeLap,
		Precision: PrecisionMilliseconds,
	}
}
