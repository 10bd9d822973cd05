package stream

import (
	"fmt"
	"io"
)

// Tap observes a byte stream at frame granularity without altering it.
//
// It accumulates passing bytes into an internal frame buffer and invokes the
// callback with each completed frame and its index. The streamer uses it to
// feed the debug frame dump; the pipeline's own bytes flow through untouched.
type Tap struct {
	src   io.Reader
	frame []byte
	fill  int
	index int
	fn    func(index int, frame []byte)
}

// NewTap creates a tap over src emitting complete frames of frameSize bytes.
// The frame slice passed to fn is reused; fn must not retain it.
func NewTap(src io.Reader, frameSize int, fn func(index int, frame []byte)) (*Tap, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("invalid tap frame size %d", frameSize)
	}
	return &Tap{src: src, frame: make([]byte, frameSize), fn: fn}, nil
}

// Read pulls from the wrapped source and mirrors the bytes into the frame
// buffer, firing the callback at every frame boundary.
func (t *Tap) Read(p []byte) (int, error) {
	n, err := t.src.Read(p)
	for consumed := 0; consumed < n; {
		c := copy(t.frame[t.fill:], p[consumed:n])
		t.fill += c
		consumed += c
		if t.fill == len(t.frame) {
			t.fn(t.index, t.frame)
			t.index++
			t.fill = 0
		}
	}
	return n, err
}

var _ io.Reader = (*Tap)(nil)
