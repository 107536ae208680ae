// Package trim holds the range-selection and looping state machine behind the
// trimming session. It has no UI or process dependencies: events go in, the next
// state and a list of effects for the caller to perform come out.
package trim

import (
	"github.com/user/rangecut/pkg/timecode"
)

const (
	// DefaultRangeWidth replaces an end that is not after the start.
	DefaultRangeWidth = 15.0
	// ClickRangeWidth is the range width chosen by a progress-bar click.
	ClickRangeWidth = 10.0
	// NudgeStep is the amount the nudge keys move a bound, in seconds.
	NudgeStep = 0.5
)

// Bound selects the start or end of a range.
type Bound int

const (
	BoundStart Bound = iota
	BoundEnd
)

func (b Bound) String() string {
	if b == BoundEnd {
		return "end"
	}
	return "start"
}

// Range is the [Start, End) interval selected for looping and export.
type Range struct {
	Start   timecode.TimeCode
	End     timecode.TimeCode
	Looping bool
}

// SetStart returns r with Start replaced.
func (r Range) SetStart(tc timecode.TimeCode) Range {
	r.Start = tc
	return r
}

// SetEnd returns r with End replaced.
func (r Range) SetEnd(tc timecode.TimeCode) Range {
	r.End = tc
	return r
}

// Get returns the chosen bound.
func (r Range) Get(b Bound) timecode.TimeCode {
	if b == BoundEnd {
		return r.End
	}
	return r.Start
}

// Normalize moves End to Start+15s when End is not after Start.
// The bool reports whether End changed.
func (r Range) Normalize() (Range, bool) {
	if r.End.After(r.Start) {
		return r, false
	}
	r.End = r.Start.Add(DefaultRangeWidth)
	return r, true
}

// Nudge shifts one bound by deltaSeconds (never below zero) and normalizes.
// The bool reports whether normalization moved End.
func (r Range) Nudge(b Bound, deltaSeconds float64) (Range, bool) {
	if b == BoundEnd {
		r.End = r.End.Add(deltaSeconds)
	} else {
		r.Start = r.Start.Add(deltaSeconds)
	}
	return r.Normalize()
}

// FromProgressClick builds a range starting at ratio of duration and lasting 10s.
// ratio is clamped to [0, 1].
func FromProgressClick(ratio float64, duration timecode.TimeCode) Range {
	ratio = clampRatio(ratio)
	start := timecode.FromSeconds(duration.Seconds() * ratio)
	return Range{
		Start: start,
		End:   start.Add(ClickRangeWidth),
	}
}

func clampRatio(ratio float64) float64 {
	// NaN fails both comparisons below
	if !(ratio >= 0) {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
