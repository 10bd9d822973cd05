package stream

import (
	"fmt"
	"time"

	"github.com/user/restream/pkg/ports"
)

// catchUpWindow is the cumulative lag budget. While accumulated lag stays
// inside this window the throttle keeps its phase-locked anchor and lets
// fast frames absorb the slack; beyond it the anchor resets to the current
// time so sustained slow frames cannot compound into runaway drift.
const catchUpWindow = time.Second

// Throttle paces frame production at a fixed target rate. Sync is called
// exactly once per frame boundary by the frame source.
type Throttle struct {
	clock         ports.Clock
	frameDuration time.Duration
	anchor        time.Time
	missed        int
}

// NewThrottle creates a throttle targeting fps frames per second.
func NewThrottle(fps float64, clock ports.Clock) (*Throttle, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate %g", fps)
	}
	return &Throttle{
		clock:         clock,
		frameDuration: time.Duration(float64(time.Second) / fps),
		anchor:        clock.Now(),
	}, nil
}

// FrameDuration returns the target inter-frame interval.
func (t *Throttle) FrameDuration() time.Duration {
	return t.frameDuration
}

// Missed returns the number of currently accumulated missed frames.
func (t *Throttle) Missed() int {
	return t.missed
}

// Sync blocks until the next frame is due.
//
// A frame that finished early sleeps off the difference and pays back one
// accumulated missed frame. A frame that finished late does not sleep and
// adds one missed frame. The anchor then advances by exactly one frame
// duration (phase-locked, keeps the long-run average rate accurate) unless
// the accumulated lag exceeds the catch-up window, in which case the anchor
// resets to now and the slack accounting starts over.
func (t *Throttle) Sync() {
	elapsed := t.clock.Now().Sub(t.anchor)
	if elapsed < t.frameDuration {
		t.clock.Sleep(t.frameDuration - elapsed)
		if t.missed > 0 {
			t.missed--
		}
	} else {
		t.missed++
	}

	if time.Duration(t.missed)*t.frameDuration > catchUpWindow {
		t.anchor = t.clock.Now()
		t.missed = 0
	} else {
		t.anchor = t.anchor.Add(t.frameDuration)
	}
}

var _ Pacer = (*Throttle)(nil)
