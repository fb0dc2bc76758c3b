// Package timefmt renders and parses stopwatch times of the form
// HH:MM:SS[.fraction].
package timefmt

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"lapwatch/internal/core/model"
)

// ErrMalformedTime indicates a string was not produced by Format.
var ErrMalformedTime = errors.New("malformed time")

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// Format renders d at the given precision. Every unit is truncated, never
// rounded. Negative durations render as zero.
func Format(d time.Duration, precision model.Precision) string {
	if d < 0 {
		d = 0
	}
	totalMs := int64(d / time.Millisecond)
	millis := totalMs % 1000
	totalSeconds := totalMs / 1000
	seconds := totalSeconds % 60
	minutes := (totalSeconds / 60) % 60
	hours := totalSeconds / 3600

	switch precision {
	case model.PrecisionCentiseconds:
		return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, millis/10)
	case model.PrecisionSeconds:
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	default:
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
	}
}

// FormatSigned renders d with a leading sign: "+" for zero and positive
// values, "-" followed by the absolute value otherwise.
func FormatSigned(d time.Duration, precision model.Precision) string {
	if d < 0 {
		return "-" + Format(-d, precision)
	}
	return "+" + Format(d, precision)
}

// FormatShort renders whole minutes and seconds as MM:SS.
func FormatShort(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// Parse recovers the duration from a string produced by Format at any
// precision.
func Parse(value string) (time.Duration, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("parse %q: %w", value, ErrMalformedTime)
	}

	wholeSeconds, fraction, hasFraction := strings.Cut(parts[2], ".")

	hours, ok := parseDigits(parts[0], 0)
	if !ok || hours > maxMillis/3_600_000 {
		return 0, fmt.Errorf("parse %q hours: %w", value, ErrMalformedTime)
	}
	minutes, ok := parseDigits(parts[1], 2)
	if !ok || minutes >= 60 {
		return 0, fmt.Errorf("parse %q minutes: %w", value, ErrMalformedTime)
	}
	seconds, ok := parseDigits(wholeSeconds, 2)
	if !ok || seconds >= 60 {
		return 0, fmt.Errorf("parse %q seconds: %w", value, ErrMalformedTime)
	}

	var millis int64
	if hasFraction {
		digits, ok := parseDigits(fraction, 0)
		switch {
		case !ok:
			return 0, fmt.Errorf("parse %q fraction: %w", value, ErrMalformedTime)
		case len(fraction) == 3:
			millis = digits
		case len(fraction) == 2:
			millis = digits * 10
		default:
			return 0, fmt.Errorf("parse %q fraction width: %w", value, ErrMalformedTime)
		}
	}

	total := ((hours*60+minutes)*60+seconds)*1000 + millis
	if total > maxMillis {
		return 0, fmt.Errorf("parse %q out of range: %w", value, ErrMalformedTime)
	}
	return time.Duration(total) * time.Millisecond, nil
}

// parseDigits accepts only ASCII digits. width 0 allows any non-zero width.
func parseDigits(value string, width int) (int64, bool) {
	if value == "" || (width > 0 && len(value) != width) {
		return 0, false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
