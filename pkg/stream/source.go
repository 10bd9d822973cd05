// Package stream implements the framebuffer streaming pipeline stages.
//
// Every stage is an io.Reader that owns its upstream reader exclusively and
// pulls bytes on demand: source → monochrome transcoder → delta-XOR encoder.
// The pipeline is single-threaded; the only suspension point is the frame
// throttle's sleep at each frame boundary.
package stream

import (
	"fmt"
	"io"
)

// Region describes the framebuffer memory region to capture.
type Region struct {
	// Path is the file the region is read from, e.g. /dev/fb0 or
	// /proc/<pid>/mem.
	Path string

	// Offset is the byte offset of the first pixel within the file.
	Offset int64

	Width         int
	Height        int
	BytesPerPixel int
}

// FrameSize returns the size of one full frame in bytes.
func (r Region) FrameSize() int {
	return r.Width * r.Height * r.BytesPerPixel
}

// Validate checks that the region describes a readable frame.
func (r Region) Validate() error {
	if r.FrameSize() <= 0 {
		return fmt.Errorf("invalid frame size %dx%dx%d", r.Width, r.Height, r.BytesPerPixel)
	}
	if r.Offset < 0 {
		return fmt.Errorf("negative region offset %d", r.Offset)
	}
	return nil
}

// Pacer is invoked exactly once per frame boundary.
type Pacer interface {
	Sync()
}

// Source cyclically re-reads a fixed-size region from a seekable handle and
// exposes it as an endless byte stream: frame N+1 immediately follows frame N.
//
// A single Read never crosses a frame boundary. Requests are clipped to the
// bytes remaining in the current frame so downstream stages that assume
// frame alignment never observe a read spanning two frames.
type Source struct {
	handle io.ReadSeeker
	start  int64
	size   int
	cursor int
	pacer  Pacer
}

// NewSource creates a cyclic source over handle for the given region.
// The handle is positioned at the region's start offset. pacer may be nil.
func NewSource(handle io.ReadSeeker, region Region, pacer Pacer) (*Source, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if _, err := handle.Seek(region.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to frame start of %s: %w", region.Path, err)
	}
	return &Source{
		handle: handle,
		start:  region.Offset,
		size:   region.FrameSize(),
		pacer:  pacer,
	}, nil
}

// Read reads up to len(p) bytes of the current frame, clipped so the read
// never passes the frame boundary. A read that lands exactly on the boundary
// is served in full; the source then invokes the pacer, rewinds the handle to
// the start offset and resets its cursor before the next read. The clipping
// comparison deliberately treats a request that exactly reaches the boundary
// the same as one that would pass it, so there is never a one-byte stub read.
func (s *Source) Read(p []byte) (int, error) {
	remaining := s.size - s.cursor
	if len(p) >= remaining {
		p = p[:remaining]
	}
	n, err := s.handle.Read(p)
	s.cursor += n
	if err != nil {
		return n, err
	}
	if s.cursor == s.size {
		if s.pacer != nil {
			s.pacer.Sync()
		}
		if _, err := s.handle.Seek(s.start, io.SeekStart); err != nil {
			return n, fmt.Errorf("rewind to frame start: %w", err)
		}
		s.cursor = 0
	}
	return n, nil
}

var _ io.Reader = (*Source)(nil)
