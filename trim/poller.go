package trim

import "time"

// TickInterval is the fixed poll cadence. Loop points may overshoot by up to one tick.
const TickInterval = 100 * time.Millisecond

// Poller tracks whether the position poll is running. Each start or stop bumps a
// generation so ticks scheduled by an earlier run can be recognized and dropped.
type Poller struct {
	active bool
	gen    uint64
}

// Start marks the poll running. started is false when it already was, in which
// case the caller must not schedule another tick chain.
func (p *Poller) Start() (gen uint64, started bool) {
	if p.active {
		return p.gen, false
	}
	p.active = true
	p.gen++
	return p.gen, true
}

// Stop marks the poll stopped and invalidates outstanding ticks.
func (p *Poller) Stop() {
	if !p.active {
		return
	}
	p.active = false
	p.gen++
}

// Active reports whether the poll is running.
func (p *Poller) Active() bool {
	return p.active
}

// Accept reports whether a tick scheduled for gen should be processed.
func (p *Poller) Accept(gen uint64) bool {
	return p.active && gen == p.gen
}
