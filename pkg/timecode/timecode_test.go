package timecode

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		millis   int64
	}{
		{"Zero", "00:00:00", "00:00:00.000", 0},
		{"Zero with millis", "00:00:00.000", "00:00:00.000", 0},
		{"Seconds only", "00:00:10", "00:00:10.000", 10000},
		{"With millis", "00:01:30.250", "00:01:30.250", 90250},
		{"One hour", "01:00:00", "01:00:00.000", 3600000},
		{"Past a day", "25:00:00.001", "25:00:00.001", 90000001},
		{"Three digit hours", "100:59:59.999", "100:59:59.999", 363599999},
		{"Short millis rejected", "  00:00:05.5 ", "", 0},
		{"Trimmed", " 00:00:05.500 ", "00:00:05.500", 5500},
		{"Largest hours", "2562047788014:59:59.999", "2562047788014:59:59.999", 9223372036853999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := Parse(tt.input)
			if tt.expected == "" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.millis, tc.Milliseconds())
			assert.Equal(t, tt.expected, Format(tc))
		})
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := []string{
		"",
		"0:00:00",
		"00:0:00",
		"00:00:0",
		"00-00-00",
		"00:00:00,000",
		"00:60:00",
		"00:00:60",
		"00:00:00.1",
		"00:00:00.1000",
		"aa:bb:cc",
		"00:00",
		"00:00:00:00",
		"-01:00:00",
		"00:00:00.",
		"99999999999999999999:00:00",
		"2562047788015:00:00",
		"2562047788015:59:59.999",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "expected ErrMalformed, got %v", err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, input, pe.Input)
		})
	}
}

func TestFormatFileSafe(t *testing.T) {
	assert.Equal(t, "00-00-10-000", FormatFileSafe(MustParse("00:00:10")))
	assert.Equal(t, "01-02-03-045", FormatFileSafe(MustParse("01:02:03.045")))
	assert.Equal(t, "26-00-00-000", FormatFileSafe(MustParse("26:00:00")))
}

func TestAddFloorsAtZero(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		delta    float64
		expected string
	}{
		{"Forward", "00:00:01.000", 0.5, "00:00:01.500"},
		{"Backward", "00:00:01.000", -0.5, "00:00:00.500"},
		{"Below half second", "00:00:00.200", -0.5, "00:00:00.000"},
		{"From zero", "00:00:00.000", -0.5, "00:00:00.000"},
		{"Across minute", "00:00:59.750", 0.5, "00:01:00.250"},
		{"Large negative", "01:00:00.000", -7200, "00:00:00.000"},
		{"Huge negative", "01:00:00.000", -1e300, "00:00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.start).Add(tt.delta)
			assert.Equal(t, tt.expected, Format(got))
			assert.GreaterOrEqual(t, got.Milliseconds(), int64(0))
		})
	}
}

func TestAddSaturates(t *testing.T) {
	assert.Equal(t, Max, MustParse("01:00:00").Add(1e300))
	assert.Equal(t, Max, Max.Add(0.5))
	assert.Equal(t, Max-500, Max.Add(-0.5))
	assert.Equal(t, MustParse("00:00:01"), MustParse("00:00:01").Add(math.NaN()))
}

func TestOrdering(t *testing.T) {
	a := MustParse("00:00:10.000")
	b := MustParse("00:00:10.001")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(MustParse("00:00:10")))
	assert.Equal(t, a, MustParse("00:00:10"))
}

func TestConversions(t *testing.T) {
	assert.Equal(t, TimeCode(1500), FromSeconds(1.5))
	assert.Equal(t, TimeCode(1), FromSeconds(0.0006))
	assert.Equal(t, Zero, FromSeconds(-3))
	assert.Equal(t, Zero, FromSeconds(math.NaN()))
	assert.Equal(t, Max, FromSeconds(1e300))
	assert.Equal(t, Max, FromSeconds(math.Inf(1)))
	assert.Equal(t, Zero, FromSeconds(math.Inf(-1)))
	assert.Equal(t, TimeCode(2500), FromDuration(2500*time.Millisecond+400*time.Microsecond))
	assert.Equal(t, Zero, FromDuration(-time.Second))
	assert.Equal(t, 90*time.Second, MustParse("00:01:30").Duration())
	assert.InDelta(t, 90.25, MustParse("00:01:30.250").Seconds(), 1e-9)
	assert.Equal(t, TimeCode(15000), MustParse("00:00:25").Sub(MustParse("00:00:10")))
	assert.Equal(t, Zero, MustParse("00:00:05").Sub(MustParse("00:00:10")))
}
