package timekeeper

import "time"

// Tracker owns elapsed time and running status of a single stopwatch.
// It never reads a clock itself, callers pass the current time.
//
// now must be non-decreasing across calls. A now earlier than the last
// Start is a caller error; Sample and Tick report zero in that case.
type Tracker struct {
	elapsed time.Duration
	anchor  time.Time
	running bool
}

// Start resumes counting from the accumulated elapsed time.
func (tracker *Tracker) Start(now time.Time) {
	if tracker.running {
		return
	}
	tracker.anchor = now.Add(-tracker.elapsed)
	tracker.running = true
}

// Stop freezes elapsed time.
func (tracker *Tracker) Stop(now time.Time) {
	if !tracker.running {
		return
	}
	tracker.elapsed = tracker.since(now)
	tracker.running = false
}

// Reset stops the tracker and zeroes elapsed time.
func (tracker *Tracker) Reset() {
	tracker.running = false
	tracker.elapsed = 0
	tracker.anchor = time.Time{}
}

// Sample returns the elapsed time at now without committing it.
func (tracker *Tracker) Sample(now time.Time) time.Duration {
	if !tracker.running {
		return tracker.elapsed
	}
	return tracker.since(now)
}

// Tick commits the elapsed time at now and returns it.
func (tracker *Tracker) Tick(now time.Time) time.Duration {
	if tracker.running {
		tracker.elapsed = tracker.since(now)
	}
	return tracker.elapsed
}

// Restore seeds a stopped tracker with previously persisted elapsed time.
func (tracker *Tracker) Restore(elapsed time.Duration) {
	if elapsed < 0 {
		elapsed = 0
	}
	tracker.Reset()
	tracker.elapsed = elapsed.Truncate(time.Millisecond)
}

// Running reports whether the tracker is counting.
func (tracker *Tracker) Running() bool {
	return tracker.running
}

// Elapsed returns the last committed elapsed time.
func (tracker *Tracker) Elapsed() time.Duration {
	return tracker.elapsed
}

func (tracker *Tracker) since(now time.Time) time.Duration {
	elapsed := now.Sub(tracker.anchor)
	if elapsed < 0 {
		return 0
	}
	return elapsed.Truncate(time.Millisecond)
}
