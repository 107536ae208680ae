// Package timecode provides millisecond-precision timestamps in HH:MM:SS.mmm form.
package timecode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Zero is the zero timestamp.
	Zero TimeCode = 0
	// Max is the largest representable timestamp. Conversions saturate here.
	Max TimeCode = math.MaxInt64

	msPerHour = int64(time.Hour / time.Millisecond)
	// maxHours keeps hours*msPerHour plus 59:59.999 within int64.
	maxHours = (math.MaxInt64 - (msPerHour - 1)) / msPerHour
)

// ErrMalformed is returned when a string does not match HH:MM:SS or HH:MM:SS.mmm.
var ErrMalformed = errors.New("timecode: malformed")

// canonical matches the strict HH:MM:SS.mmm form. Hours take two or more digits.
var canonical = regexp.MustCompile(`^(\d{2,}):([0-5]\d):([0-5]\d)\.(\d{3})$`)

// TimeCode is a non-negative duration in whole milliseconds.
type TimeCode int64

// ParseError describes a string that could not be parsed as a timecode.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("timecode: malformed %q (expected HH:MM:SS or HH:MM:SS.mmm)", e.Input)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *ParseError) Unwrap() error {
	return ErrMalformed
}

// Parse parses HH:MM:SS or HH:MM:SS.mmm. A missing fractional part is read as .000.
// Surrounding whitespace is ignored.
func Parse(text string) (TimeCode, error) {
	s := strings.TrimSpace(text)
	if !strings.Contains(s, ".") {
		s += ".000"
	}

	m := canonical.FindStringSubmatch(s)
	if m == nil {
		return 0, &ParseError{Input: text}
	}

	hours, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || hours > maxHours {
		return 0, &ParseError{Input: text}
	}
	// The regexp already bounds these to two or three digits.
	minutes, _ := strconv.ParseInt(m[2], 10, 64)
	seconds, _ := strconv.ParseInt(m[3], 10, 64)
	millis, _ := strconv.ParseInt(m[4], 10, 64)

	return TimeCode(hours*msPerHour + minutes*60000 + seconds*1000 + millis), nil
}

// MustParse is like Parse but panics on malformed input. Intended for constants and tests.
func MustParse(text string) TimeCode {
	tc, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return tc
}

// FromSeconds converts fractional seconds, rounded to the nearest millisecond.
// The result is floored at zero and saturates at Max.
func FromSeconds(seconds float64) TimeCode {
	return TimeCode(clampMillis(seconds * 1000))
}

// clampMillis rounds ms to an int64 in [0, MaxInt64]. NaN is zero.
func clampMillis(ms float64) int64 {
	switch {
	case math.IsNaN(ms) || ms <= 0:
		return 0
	case ms >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(math.Round(ms))
}

// FromDuration truncates d to milliseconds, floored at zero.
func FromDuration(d time.Duration) TimeCode {
	if d <= 0 {
		return 0
	}
	return TimeCode(d.Milliseconds())
}

// Milliseconds returns the raw millisecond count.
func (tc TimeCode) Milliseconds() int64 {
	return int64(tc)
}

// Seconds returns the timestamp as fractional seconds.
func (tc TimeCode) Seconds() float64 {
	return float64(tc) / 1000
}

// Duration returns the timestamp as a time.Duration.
func (tc TimeCode) Duration() time.Duration {
	return time.Duration(tc) * time.Millisecond
}

// Add returns tc shifted by deltaSeconds. The result never drops below zero
// and saturates at Max.
func (tc TimeCode) Add(deltaSeconds float64) TimeCode {
	if math.IsNaN(deltaSeconds) {
		return tc
	}
	if deltaSeconds < 0 {
		back := TimeCode(clampMillis(-deltaSeconds * 1000))
		return tc.Sub(back)
	}
	forward := TimeCode(clampMillis(deltaSeconds * 1000))
	if forward > Max-tc {
		return Max
	}
	return tc + forward
}

// Sub returns tc - other, floored at zero.
func (tc TimeCode) Sub(other TimeCode) TimeCode {
	if other >= tc {
		return 0
	}
	return tc - other
}

// Compare returns -1, 0 or 1 when tc is before, equal to, or after other.
func (tc TimeCode) Compare(other TimeCode) int {
	switch {
	case tc < other:
		return -1
	case tc > other:
		return 1
	default:
		return 0
	}
}

// Before reports whether tc is strictly before other.
func (tc TimeCode) Before(other TimeCode) bool {
	return tc < other
}

// After reports whether tc is strictly after other.
func (tc TimeCode) After(other TimeCode) bool {
	return tc > other
}

// String returns the canonical form.
func (tc TimeCode) String() string {
	return Format(tc)
}

// Format renders tc as zero-padded HH:MM:SS.mmm. Hours are not wrapped at 24.
func Format(tc TimeCode) string {
	h, m, s, ms := fields(tc)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// FormatFileSafe renders tc as HH-MM-SS-mmm for use in file names.
func FormatFileSafe(tc TimeCode) string {
	h, m, s, ms := fields(tc)
	return fmt.Sprintf("%02d-%02d-%02d-%03d", h, m, s, ms)
}

func fields(tc TimeCode) (hours, minutes, seconds, millis int64) {
	total := int64(tc)
	if total < 0 {
		total = 0
	}
	hours = total / 3600000
	minutes = (total % 3600000) / 60000
	seconds = (total % 60000) / 1000
	millis = total % 1000
	return hours, minutes, seconds, millis
}
