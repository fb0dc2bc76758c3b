package timekeeper

import "time"

// Clock supplies the current time. Implementations must never move
// backwards between calls.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, whose monotonic reading is immune to
// wall-clock adjustments.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
