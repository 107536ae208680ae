package mpv

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/user/rangecut/logging"
	"github.com/user/rangecut/pkg/timecode"
)

// Player adapts a Client to the narrow playback interface the trimming session drives.
type Player struct {
	client *Client
	logger zerolog.Logger
}

// NewPlayer wraps client.
func NewPlayer(client *Client) *Player {
	return &Player{
		client: client,
		logger: logging.WithComponent("mpv"),
	}
}

// ensureConnected redials after the client dropped a failed connection, so one
// stalled reply does not leave the session without a player.
func (p *Player) ensureConnected() error {
	if p.client.IsConnected() {
		return nil
	}
	if err := p.client.Connect(); err != nil {
		return err
	}
	p.logger.Info().Str("socket", p.client.SocketPath()).Msg("reconnected to mpv")
	return nil
}

// LoadSource loads path paused at the start.
func (p *Player) LoadSource(path string) error {
	if err := p.ensureConnected(); err != nil {
		return err
	}
	if err := p.client.LoadFile(path); err != nil {
		return err
	}
	p.logger.Debug().Str("path", path).Msg("loaded source")
	return p.client.SetPaused(true)
}

// Play resumes playback.
func (p *Player) Play() error {
	if err := p.ensureConnected(); err != nil {
		return err
	}
	return p.client.SetPaused(false)
}

// Stop pauses and rewinds to the start. mpv's own "stop" would unload the file.
func (p *Player) Stop() error {
	if err := p.ensureConnected(); err != nil {
		return err
	}
	if err := p.client.SetPaused(true); err != nil {
		return err
	}
	return p.client.SeekAbsolute(0)
}

// Seek jumps to tc.
func (p *Player) Seek(tc timecode.TimeCode) error {
	if err := p.ensureConnected(); err != nil {
		return err
	}
	return p.client.SeekAbsolute(tc.Seconds())
}

// CurrentPosition returns the playback position. Before a file is loaded it is zero.
func (p *Player) CurrentPosition() (timecode.TimeCode, error) {
	if err := p.ensureConnected(); err != nil {
		return timecode.Zero, err
	}
	pos, err := p.client.GetTimePos()
	if errors.Is(err, ErrPropertyUnavailable) {
		return timecode.Zero, nil
	}
	if err != nil {
		return timecode.Zero, err
	}
	return timecode.FromSeconds(pos), nil
}

// KnownDuration returns the media duration, or false while mpv does not know it yet.
func (p *Player) KnownDuration() (timecode.TimeCode, bool) {
	if p.ensureConnected() != nil {
		return timecode.Zero, false
	}
	d, err := p.client.GetDuration()
	if err != nil {
		if !errors.Is(err, ErrPropertyUnavailable) {
			p.logger.Debug().Err(err).Msg("duration query failed")
		}
		return timecode.Zero, false
	}
	if d <= 0 {
		return timecode.Zero, false
	}
	return timecode.FromSeconds(d), true
}
