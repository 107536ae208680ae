package trim

import (
	"github.com/user/rangecut/clip"
	"github.com/user/rangecut/pkg/timecode"
)

// Effect is an instruction produced by Session.Apply for the caller to carry out.
type Effect interface {
	isEffect()
}

// LoadSource asks the player to open Path.
type LoadSource struct{ Path string }

// Seek asks the player to jump to To.
type Seek struct{ To timecode.TimeCode }

// Play asks the player to start or resume playback.
type Play struct{}

// StopPlayback asks the player to stop and rewind.
type StopPlayback struct{}

// WriteField replaces the text of a range field. It is a programmatic write and
// must not be fed back into the session as a FieldEdited event.
type WriteField struct {
	Bound Bound
	Text  string
}

// StartPolling starts the 100 ms position poll if it is not running.
type StartPolling struct{}

// StopPolling stops the position poll.
type StopPolling struct{}

// PromptDestination asks the user where to save the export, suggesting Suggested.
type PromptDestination struct {
	Suggested string
	Start     timecode.TimeCode
	End       timecode.TimeCode
}

// StartExport asks the caller to run Job in the background and report back with ExportFinished.
type StartExport struct{ Job clip.Job }

func (LoadSource) isEffect()        {}
func (Seek) isEffect()              {}
func (Play) isEffect()              {}
func (StopPlayback) isEffect()      {}
func (WriteField) isEffect()        {}
func (StartPolling) isEffect()      {}
func (StopPolling) isEffect()       {}
func (PromptDestination) isEffect() {}
func (StartExport) isEffect()       {}
