package trim

import (
	"github.com/user/rangecut/clip"
	"github.com/user/rangecut/pkg/timecode"
)

// Event is an input to Session.Apply.
type Event interface {
	isEvent()
}

// Opened records that the user picked a source file.
type Opened struct{ Path string }

// LoadFailed reports that the player could not load Path.
type LoadFailed struct {
	Path string
	Err  error
}

// PlayFull plays the whole file without looping.
type PlayFull struct{}

// PlayRange loops the range currently typed into the fields.
type PlayRange struct{}

// Stop stops playback and polling.
type Stop struct{}

// Tick is one poll sample read from the player.
type Tick struct {
	Position      timecode.TimeCode
	Duration      timecode.TimeCode
	DurationKnown bool
}

// FieldEdited is a user keystroke that changed a range field to Text.
// Programmatic writes never produce this event.
type FieldEdited struct {
	Bound Bound
	Text  string
}

// Nudge moves one field by Delta seconds.
type Nudge struct {
	Bound Bound
	Delta float64
}

// ProgressClicked is a click at column X of a progress bar Width columns wide.
// Duration is read from the player at click time.
type ProgressClicked struct {
	X             float64
	Width         float64
	Duration      timecode.TimeCode
	DurationKnown bool
}

// PrepareExport starts the export flow: validate and normalize the range, then prompt for a destination.
type PrepareExport struct {
	// OutputDir holds suggested files; empty means next to the source.
	OutputDir string
}

// ExportConfirmed carries the destination chosen by the user. An empty Dest cancels.
type ExportConfirmed struct{ Dest string }

// ExportFinished reports the outcome of a StartExport effect.
type ExportFinished struct {
	Result clip.Result
	Err    error
}

func (Opened) isEvent()          {}
func (LoadFailed) isEvent()      {}
func (PlayFull) isEvent()        {}
func (PlayRange) isEvent()       {}
func (Stop) isEvent()            {}
func (Tick) isEvent()            {}
func (FieldEdited) isEvent()     {}
func (Nudge) isEvent()           {}
func (ProgressClicked) isEvent() {}
func (PrepareExport) isEvent()   {}
func (ExportConfirmed) isEvent() {}
func (ExportFinished) isEvent()  {}
