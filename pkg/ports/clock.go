package ports

import (
	"time"
)

// Clock abstracts wall-clock time and sleeping so the frame-rate throttle
// can be driven deterministically in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep pauses the calling goroutine for at least the given duration.
	Sleep(d time.Duration)
}
