package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return epoch.Add(offset)
}

func TestTrackerStartsAtZero(t *testing.T) {
	var tracker Tracker
	require.False(t, tracker.Running())
	require.Zero(t, tracker.Sample(at(time.Hour)))
}

func TestTrackerSampleDoesNotCommit(t *testing.T) {
	var tracker Tracker
	tracker.Start(at(0))

	require.Equal(t, 1500*time.Millisecond, tracker.Sample(at(1500*time.Millisecond)))
	require.Zero(t, tracker.Elapsed())

	require.Equal(t, 2*time.Second, tracker.Tick(at(2*time.Second)))
	require.Equal(t, 2*time.Second, tracker.Elapsed())
}

func TestTrackerResumePreservesElapsed(t *testing.T) {
	var tracker Tracker
	t0 := at(0)
	now := at(3 * time.Second)
	tracker.Start(t0)
	tracker.Tick(now)
	tracker.Stop(now)

	t1 := at(10 * time.Second)
	now2 := at(12500 * time.Millisecond)
	tracker.Start(t1)
	elapsed := tracker.Tick(now2)

	require.Equal(t, now.Sub(t0)+now2.Sub(t1), elapsed)
	require.Equal(t, 5500*time.Millisecond, elapsed)
}

func TestTrackerStopFreezes(t *testing.T) {
	var tracker Tracker
	tracker.Start(at(0))
	tracker.Stop(at(time.Second))

	require.False(t, tracker.Running())
	require.Equal(t, time.Second, tracker.Sample(at(time.Hour)))
	require.Equal(t, time.Second, tracker.Tick(at(time.Hour)))
}

func TestTrackerStartAndStopAreIdempotent(t *testing.T) {
	var tracker Tracker
	tracker.Start(at(0))
	tracker.Start(at(5 * time.Second))
	require.Equal(t, 6*time.Second, tracker.Sample(at(6*time.Second)))

	tracker.Stop(at(6 * time.Second))
	tracker.Stop(at(9 * time.Second))
	require.Equal(t, 6*time.Second, tracker.Elapsed())
}

func TestTrackerReset(t *testing.T) {
	var tracker Tracker
	tracker.Start(at(0))
	tracker.Reset()

	require.False(t, tracker.Running())
	require.Zero(t, tracker.Elapsed())

	tracker.Start(at(time.Minute))
	require.Equal(t, time.Second, tracker.Sample(at(time.Minute+time.Second)))
}

func TestTrackerTruncatesToMilliseconds(t *testing.T) {
	var tracker Tracker
	tracker.Start(at(0))
	require.Equal(t, 12*time.Millisecond, tracker.Tick(at(12*time.Millisecond+900*time.Microsecond)))
}

func TestTrackerBackwardsClockClampsToZero(t *testing.T) {
	var tracker Tracker
	tracker.Start(at(time.Minute))
	require.Zero(t, tracker.Sample(at(0)))
}

func TestTrackerRestore(t *testing.T) {
	var tracker Tracker
	tracker.Start(at(0))
	tracker.Restore(4200 * time.Millisecond)
	require.False(t, tracker.Running())
	require.Equal(t, 4200*time.Millisecond, tracker.Elapsed())

	tracker.Restore(-time.Second)
	require.Zero(t, tracker.Elapsed())
}
