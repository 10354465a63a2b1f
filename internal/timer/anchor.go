// Package timer derives a locally ticking countdown from a
// server-supplied poll deadline. The anchor is purely a display
// derivation: it never drives a session phase transition.
package timer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Anchor converts a (startTime, duration) pair into a countdown that is
// recomputed at 1 Hz and hard-corrected whenever the server supplies
// its own timeLeft. The clock is injected so tests can drive the ticker.
type Anchor struct {
	clock  clockwork.Clock
	onTick func(remainingSeconds int)

	mu       sync.Mutex
	deadline time.Time
	running  bool
	stop     chan struct{}
}

// New creates an anchor. onTick may be nil; when set it is called once
// per second with the remaining seconds, including the final zero.
func New(clock clockwork.Clock, onTick func(remainingSeconds int)) *Anchor {
	return &Anchor{
		clock:  clock,
		onTick: onTick,
	}
}

// Start anchors the countdown to the server's start time and duration,
// replacing any countdown already running.
func (a *Anchor) Start(start time.Time, durationSeconds int) {
	a.mu.Lock()
	a.stopLocked()
	a.deadline = start.Add(time.Duration(durationSeconds) * time.Second)
	a.running = true
	a.stop = make(chan struct{})
	stop := a.stop
	a.mu.Unlock()

	go a.loop(stop)
}

// Correct overrides the countdown with the server's authoritative
// timeLeft. A positive correction revives a countdown whose local
// ticker already hit zero; only an explicit Stop is final.
func (a *Anchor) Correct(timeLeftSeconds int) {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.deadline = a.clock.Now().Add(time.Duration(timeLeftSeconds) * time.Second)

	var stop chan struct{}
	if a.stop == nil && timeLeftSeconds > 0 {
		a.stop = make(chan struct{})
		stop = a.stop
	}
	a.mu.Unlock()

	if stop != nil {
		go a.loop(stop)
	}
}

// TimeLeft returns the remaining whole seconds, never negative
func (a *Anchor) TimeLeft() int {
	a.mu.Lock()
	deadline := a.deadline
	running := a.running
	a.mu.Unlock()

	if !running {
		return 0
	}

	remaining := deadline.Sub(a.clock.Now())
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

// Stop cancels the countdown
func (a *Anchor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Anchor) stopLocked() {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	a.running = false
}

// loop ticks until the countdown hits zero or is stopped. Reaching zero
// stops the ticking but triggers nothing else: leaving the active phase
// is driven only by the pollEnded event, and a later server correction
// may re-arm the deadline.
func (a *Anchor) loop(stop chan struct{}) {
	ticker := a.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			remaining := a.TimeLeft()
			if a.onTick != nil {
				a.onTick(remaining)
			}
			if remaining <= 0 {
				a.mu.Lock()
				if a.stop != stop {
					a.mu.Unlock()
					return
				}
				if a.deadline.After(a.clock.Now()) {
					// A correction landed between the tick and now.
					a.mu.Unlock()
					continue
				}
				a.stop = nil
				a.mu.Unlock()
				return
			}
		}
	}
}
