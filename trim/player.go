package trim

import (
	"github.com/user/rangecut/pkg/timecode"
)

// Player is the playback collaborator the session drives.
type Player interface {
	LoadSource(path string) error
	Play() error
	Stop() error
	Seek(tc timecode.TimeCode) error
	CurrentPosition() (timecode.TimeCode, error)
	KnownDuration() (timecode.TimeCode, bool)
}

// ReadTick samples the player for a Tick event. A failed position read reports an unknown duration.
func ReadTick(p Player) Tick {
	d, known := p.KnownDuration()
	if !known {
		return Tick{}
	}
	pos, err := p.CurrentPosition()
	if err != nil {
		return Tick{}
	}
	return Tick{Position: pos, Duration: d, DurationKnown: true}
}

// Perform carries out the player effects (LoadSource, Seek, Play, StopPlayback).
// handled is false for effects that belong to the caller.
func Perform(p Player, e Effect) (handled bool, err error) {
	switch e := e.(type) {
	case LoadSource:
		return true, p.LoadSource(e.Path)
	case Seek:
		return true, p.Seek(e.To)
	case Play:
		return true, p.Play()
	case StopPlayback:
		return true, p.Stop()
	}
	return false, nil
}
