package model

import (
	"strings"
	"time"
)

// Mode selects how a recorded mark is accounted.
type Mode string

const (
	// ModeLap measures each mark from the previous one.
	ModeLap Mode = "lap"
	// ModeSplit measures each mark from the start of the session.
	ModeSplit Mode = "split"
)

// Valid reports whether mode is a known accounting mode.
func (mode Mode) Valid() bool {
	return mode == ModeLap || mode == ModeSplit
}

// Label returns the user-facing name of the mode.
func (mode Mode) Label() string {
	if mode == ModeSplit {
		return "Split"
	}
	return "Lap"
}

// ParseMode converts a stored or user-entered mode name.
func ParseMode(value string) (Mode, bool) {
	mode := Mode(strings.ToLower(strings.TrimSpace(value)))
	if !mode.Valid() {
		return ModeLap, false
	}
	return mode, true
}

// Precision selects the finest unit shown when formatting a time.
type Precision string

const (
	PrecisionMilliseconds Precision = "ms"
	PrecisionCentiseconds Precision = "cs"
	PrecisionSeconds      Precision = "s"
)

// Valid reports whether precision is a known display precision.
func (precision Precision) Valid() bool {
	switch precision {
	case PrecisionMilliseconds, PrecisionCentiseconds, PrecisionSeconds:
		return true
	}
	return false
}

// ParsePrecision converts a stored or user-entered precision name.
func ParsePrecision(value string) (Precision, bool) {
	precision := Precision(strings.ToLower(strings.TrimSpace(value)))
	if !precision.Valid() {
		return PrecisionMilliseconds, false
	}
	return precision, true
}

// StopwatchConfig contains runtime settings for the stopwatch session.
type StopwatchConfig struct {
	// TickInterval is how often elapsed time is committed and published
	// while the stopwatch runs.
	TickInterval time.Duration
}
