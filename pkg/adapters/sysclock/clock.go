// Package sysclock provides the wall clock implementation of ports.Clock.
package sysclock

import (
	"time"

	"github.com/user/restream/pkg/ports"
)

// Clock implements ports.Clock using the time package.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// Sleep pauses the calling goroutine.
func (c *Clock) Sleep(d time.Duration) {
	time.Sleep(d)
}

var _ ports.Clock = (*Clock)(nil)
