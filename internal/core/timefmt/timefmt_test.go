package timefmt

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lapwatch/internal/core/model"
)

func TestFormat(t *testing.T) {
	d := 3*time.Hour + 25*time.Minute + 7*time.Second + 89*time.Millisecond

	cases := []struct {
		name      string
		precision model.Precision
		want      string
	}{
		{"milliseconds", model.PrecisionMilliseconds, "03:25:07.089"},
		{"centiseconds", model.PrecisionCentiseconds, "03:25:07.08"},
		{"seconds", model.PrecisionSeconds, "03:25:07"},
		{"unknown falls back to milliseconds", model.Precision("ns"), "03:25:07.089"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(d, tc.precision))
		})
	}
}

func TestFormatTruncatesAtEveryUnit(t *testing.T) {
	assert.Equal(t, "00:00:59.99", Format(59*time.Second+999*time.Millisecond, model.PrecisionCentiseconds))
	assert.Equal(t, "00:00:59", Format(59*time.Second+999*time.Millisecond, model.PrecisionSeconds))
	assert.Equal(t, "00:00:00.001", Format(1999*time.Microsecond, model.PrecisionMilliseconds))
}

func TestFormatEdges(t *testing.T) {
	assert.Equal(t, "00:00:00.000", Format(0, model.PrecisionMilliseconds))
	assert.Equal(t, "00:00:00.000", Format(-5*time.Second, model.PrecisionMilliseconds))
	assert.Equal(t, "100:00:00.000", Format(100*time.Hour, model.PrecisionMilliseconds))
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+00:00:00.500", FormatSigned(500*time.Millisecond, model.PrecisionMilliseconds))
	assert.Equal(t, "+00:00:00.000", FormatSigned(0, model.PrecisionMilliseconds))
	assert.Equal(t, "-00:00:01.40", FormatSigned(-1400*time.Millisecond, model.PrecisionCentiseconds))
}

func TestFormatShort(t *testing.T) {
	assert.Equal(t, "00:00", FormatShort(999*time.Millisecond))
	assert.Equal(t, "01:05", FormatShort(65*time.Second))
	assert.Equal(t, "75:00", FormatShort(75*time.Minute))
}

func TestParseRoundTripsMilliseconds(t *testing.T) {
	values := []time.Duration{
		0,
		time.Millisecond,
		999 * time.Millisecond,
		59*time.Minute + 59*time.Second + 999*time.Millisecond,
		12*time.Hour + 34*time.Minute + 56*time.Second + 789*time.Millisecond,
		123 * time.Hour,
	}
	for step := time.Duration(0); step < 5*time.Second; step += 37 * time.Millisecond {
		values = append(values, step)
	}

	for _, value := range values {
		parsed, err := Parse(Format(value, model.PrecisionMilliseconds))
		require.NoError(t, err)
		require.Equal(t, value, parsed)
	}
}

func TestParseOtherPrecisions(t *testing.T) {
	parsed, err := Parse("00:01:02.34")
	require.NoError(t, err)
	require.Equal(t, time.Minute+2*time.Second+340*time.Millisecond, parsed)

	parsed, err = Parse("01:00:00")
	require.NoError(t, err)
	require.Equal(t, time.Hour, parsed)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, value := range []string{
		"",
		"12:34",
		"aa:00:00.000",
		"00:60:00.000",
		"00:00:61.000",
		"00:0:00.000",
		"00:00:00.",
		"00:00:00.1",
		"00:00:00.1234",
		"-1:00:00.000",
		"00:00:00.+12",
	} {
		_, err := Parse(value)
		require.ErrorIs(t, err, ErrMalformedTime, value)
	}
}

func TestParseRejectsOutOfRangeHours(t *testing.T) {
	for _, value := range []string{
		"9999999999999999:00:00.000",
		"2562047:59:59.999",
	} {
		_, err := Parse(value)
		require.ErrorIs(t, err, ErrMalformedTime, value)
	}

	largest := time.Duration(math.MaxInt64).Truncate(time.Millisecond)
	parsed, err := Parse(Format(largest, model.PrecisionMilliseconds))
	require.NoError(t, err)
	require.Equal(t, largest, parsed)
}
