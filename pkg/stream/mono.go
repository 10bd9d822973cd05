package stream

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedDepth is returned for pixel depths other than 1 or 2 bytes.
var ErrUnsupportedDepth = errors.New("unsupported bytes per pixel")

// Mono repacks native frames into 1-bit-per-pixel form.
//
// A pixel maps to bit 1 ("on") exactly when all of its bytes are zero, which
// on the reMarkable framebuffer means the pixel is drawn. Bits are packed 8
// pixels per output byte, most-significant bit first. Mostly-white screens
// therefore become mostly-zero bytes, which the delta encoder and compressor
// downstream collapse almost entirely.
type Mono struct {
	src    io.Reader
	depth  int
	native []byte
	packed []byte
	cursor int
}

// NewMono creates a transcoder over src for a width×height frame with the
// given pixel depth (1 or 2 bytes). The constructor reads and packs the
// first full native frame; a short read here is fatal since partial frames
// cannot be packed correctly.
func NewMono(src io.Reader, width, height, bytesPerPixel int) (*Mono, error) {
	switch bytesPerPixel {
	case 1, 2:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, bytesPerPixel)
	}
	pixels := width * height
	if pixels <= 0 || pixels%8 != 0 {
		return nil, fmt.Errorf("frame of %dx%d pixels is not packable into whole bytes", width, height)
	}
	m := &Mono{
		src:    src,
		depth:  bytesPerPixel,
		native: make([]byte, pixels*bytesPerPixel),
		packed: make([]byte, pixels/8),
	}
	if err := m.refill(); err != nil {
		return nil, err
	}
	return m, nil
}

// PackedFrameSize returns the size of one packed frame in bytes.
func (m *Mono) PackedFrameSize() int {
	return len(m.packed)
}

// Read serves bytes from the current packed frame. When the request exceeds
// what remains it returns only the remainder instead of blocking to refill;
// the next Read refills the buffer with a freshly packed frame. A refill
// only ever happens at exhaustion, never mid-frame.
func (m *Mono) Read(p []byte) (int, error) {
	if m.cursor == len(m.packed) {
		if err := m.refill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, m.packed[m.cursor:])
	m.cursor += n
	return n, nil
}

// refill reads exactly one native frame and repacks it.
func (m *Mono) refill() error {
	if _, err := io.ReadFull(m.src, m.native); err != nil {
		return fmt.Errorf("read native frame: %w", err)
	}
	packFrame(m.packed, m.native, m.depth)
	m.cursor = 0
	return nil
}

// packFrame packs groups of 8 consecutive pixels into single bytes,
// first pixel at the most-significant bit.
func packFrame(dst, src []byte, depth int) {
	for i := range dst {
		base := i * 8 * depth
		var b byte
		for px := 0; px < 8; px++ {
			off := base + px*depth
			on := src[off] == 0
			if depth == 2 {
				on = on && src[off+1] == 0
			}
			b <<= 1
			if on {
				b |= 1
			}
		}
		dst[i] = b
	}
}

var _ io.Reader = (*Mono)(nil)
