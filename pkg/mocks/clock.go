// Package mocks provides mock implementations of the ports interfaces.
package mocks

import (
	"sync"
	"time"

	"github.com/user/restream/pkg/ports"
)

// Clock is a controllable mock implementation of ports.Clock.
//
// Sleep advances the clock by the slept duration by default, so throttle
// tests observe time exactly as a sleeping goroutine would. Advance moves
// the clock forward to simulate work taking time.
type Clock struct {
	mu  sync.Mutex
	now time.Time

	Slept []time.Duration

	SleepFunc func(d time.Duration)
}

// NewClock creates a mock clock starting at the given time.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Sleep(d time.Duration) {
	if c.SleepFunc != nil {
		c.SleepFunc(d)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Slept = append(c.Slept, d)
	c.now = c.now.Add(d)
}

// Advance moves the clock forward without recording a sleep.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TotalSlept returns the sum of all recorded sleeps (for test verification).
func (c *Clock) TotalSlept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.Slept {
		total += d
	}
	return total
}

var _ ports.Clock = (*Clock)(nil)
