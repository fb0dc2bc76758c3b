// Package ledger keeps the ordered list of lap and split marks recorded
// during a stopwatch session.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"lapwatch/internal/core/model"
)

// ErrInvalidSequence indicates restored marks break the 1..n numbering.
var ErrInvalidSequence = errors.New("invalid mark sequence")

// Ledger records marks in lap or split accounting mode.
type Ledger struct {
	mode   model.Mode
	marks  []model.Mark
	anchor time.Duration
}

// New creates an empty ledger. Unknown modes fall back to lap mode.
func New(mode model.Mode) *Ledger {
	if !mode.Valid() {
		mode = model.ModeLap
	}
	return &Ledger{mode: mode}
}

// Mode returns the accounting mode used for the next mark.
func (ledger *Ledger) Mode() model.Mode {
	return ledger.mode
}

// Anchor returns the cumulative time of the last lap boundary.
func (ledger *Ledger) Anchor() time.Duration {
	return ledger.anchor
}

// Len returns the number of recorded marks.
func (ledger *Ledger) Len() int {
	return len(ledger.marks)
}

// Marks returns a copy of the recorded marks in sequence order.
func (ledger *Ledger) Marks() []model.Mark {
	return append([]model.Mark(nil), ledger.marks...)
}

// SetMode switches accounting for future marks. Existing marks are kept.
// When the tracker is running the lap boundary moves to current so the
// next lap only measures newly elapsed time.
func (ledger *Ledger) SetMode(mode model.Mode, running bool, current time.Duration) {
	if !mode.Valid() || mode == ledger.mode {
		return
	}
	ledger.mode = mode
	if running {
		ledger.anchor = current
	}
}

// Record appends a mark for the cumulative elapsed time current.
func (ledger *Ledger) Record(current time.Duration) model.Mark {
	return ledger.RecordAt(current, time.Time{})
}

// RecordAt is Record with the wall-clock time the mark was taken.
func (ledger *Ledger) RecordAt(current time.Duration, at time.Time) model.Mark {
	mark := model.Mark{
		Number:     len(ledger.marks) + 1,
		Value:      ledger.CurrentSplit(current),
		Total:      current,
		Mode:       ledger.mode,
		RecordedAt: at,
	}
	if ledger.mode == model.ModeLap {
		ledger.anchor = current
	}
	if count := len(ledger.marks); count > 0 {
		mark.Diff = mark.Value - ledger.marks[count-1].Value
		mark.HasDiff = true
	}
	ledger.marks = append(ledger.marks, mark)
	return mark
}

// CurrentSplit returns the value a mark recorded at current would carry.
func (ledger *Ledger) CurrentSplit(current time.Duration) time.Duration {
	if ledger.mode == model.ModeSplit {
		return current
	}
	value := current - ledger.anchor
	if value < 0 {
		return 0
	}
	return value
}

// Clear removes every mark and resets the lap boundary.
func (ledger *Ledger) Clear() {
	ledger.marks = nil
	ledger.anchor = 0
}

// Restore replaces the ledger contents with persisted state. The ledger is
// left untouched when marks are not numbered 1..n or carry negative values.
func (ledger *Ledger) Restore(mode model.Mode, anchor time.Duration, marks []model.Mark) error {
	for index, mark := range marks {
		if mark.Number != index+1 {
			return fmt.Errorf("mark %d numbered %d: %w", index+1, mark.Number, ErrInvalidSequence)
		}
		if mark.Value < 0 || mark.Total < 0 {
			return fmt.Errorf("mark %d has negative time: %w", mark.Number, ErrInvalidSequence)
		}
	}
	if !mode.Valid() {
		mode = model.ModeLap
	}
	if anchor < 0 {
		anchor = 0
	}
	ledger.mode = mode
	ledger.anchor = anchor
	ledger.marks = append([]model.Mark(nil), marks...)
	return nil
}
