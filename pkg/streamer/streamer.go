// Package streamer composes and runs the capture pipeline.
package streamer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/user/restream/pkg/ports"
	"github.com/user/restream/pkg/stream"
)

// copyBufferSize is the pull granularity of the pipeline drain loop.
const copyBufferSize = 64 << 10

// Config contains all configuration for one streaming session.
type Config struct {
	// Region is the resolved framebuffer region to capture.
	Region stream.Region

	// FPS is the target frame rate.
	FPS float64

	// Monochrome enables 1-bit-per-pixel packing.
	Monochrome bool

	// BlockSize is the delta encoder's block size in bytes; zero selects
	// the effective frame size so frame-over-frame deltas line up.
	BlockSize int

	// DumpEvery saves every Nth frame when the dump is enabled.
	DumpEvery int
}

// Streamer wires the pipeline stages to the injected adapters and drains
// the result into the sink:
//
//	source → (monochrome) → (tap) → delta-XOR → compressor → sink
//
// Single-threaded and pull-based; every stage's Read may block on the one
// above it, and the throttle's sleep is the only suspension point.
type Streamer struct {
	compressor ports.Compressor
	sink       ports.Sink
	dump       ports.FrameDump
	logger     ports.Logger
	clock      ports.Clock
}

// New creates a new Streamer.
func New(
	compressor ports.Compressor,
	sink ports.Sink,
	dump ports.FrameDump,
	logger ports.Logger,
	clock ports.Clock,
) *Streamer {
	return &Streamer{
		compressor: compressor,
		sink:       sink,
		dump:       dump,
		logger:     logger.WithComponent("streamer"),
		clock:      clock,
	}
}

// Run streams frames from handle until the context is cancelled, the
// capture source ends, or a stage fails. Errors are fatal by design: no
// stage retries, since a retry would desynchronize frame pacing and a
// single misaligned byte corrupts all downstream decoding.
func (s *Streamer) Run(ctx context.Context, handle io.ReadSeeker, cfg Config) error {
	if err := cfg.Region.Validate(); err != nil {
		return err
	}

	encoder, err := s.buildPipeline(handle, cfg)
	if err != nil {
		return err
	}

	out, err := s.sink.Open()
	if err != nil {
		return fmt.Errorf("open sink %s: %w", s.sink.Name(), err)
	}
	defer out.Close()

	zw, err := s.compressor.NewWriter(out)
	if err != nil {
		return err
	}

	s.logger.Info("Streaming %s to %s at %g fps", cfg.Region.Path, s.sink.Name(), cfg.FPS)
	s.logger.Debug("Compressing with %s", s.compressor.Name())

	buf := make([]byte, copyBufferSize)
	for {
		if ctx.Err() != nil {
			if err := zw.Close(); err != nil {
				return fmt.Errorf("flush compressor: %w", err)
			}
			s.logger.Info("Stream stopped")
			return nil
		}

		n, rerr := encoder.Read(buf)
		if n > 0 {
			if _, werr := zw.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write to %s: %w", s.sink.Name(), werr)
			}
		}
		if rerr != nil {
			if cerr := zw.Close(); cerr != nil {
				return fmt.Errorf("flush compressor: %w", cerr)
			}
			if errors.Is(rerr, io.EOF) {
				// Genuine end of the capture source.
				s.logger.Info("Stream stopped")
				return nil
			}
			return fmt.Errorf("read stream: %w", rerr)
		}
	}
}

// buildPipeline assembles the reader stack for the session.
func (s *Streamer) buildPipeline(handle io.ReadSeeker, cfg Config) (io.Reader, error) {
	throttle, err := stream.NewThrottle(cfg.FPS, s.clock)
	if err != nil {
		return nil, err
	}

	src, err := stream.NewSource(handle, cfg.Region, throttle)
	if err != nil {
		return nil, err
	}

	var rd io.Reader = src
	frameSize := cfg.Region.FrameSize()

	if cfg.Monochrome {
		mono, err := stream.NewMono(src, cfg.Region.Width, cfg.Region.Height, cfg.Region.BytesPerPixel)
		if err != nil {
			return nil, fmt.Errorf("monochrome transcoder: %w", err)
		}
		frameSize = mono.PackedFrameSize()
		rd = mono
		s.logger.Debug("Monochrome packing enabled: %d bytes per frame", frameSize)
	}

	if s.dump.Enabled() {
		rd, err = s.tapForDump(rd, frameSize, cfg)
		if err != nil {
			return nil, err
		}
	}

	blockSize := cfg.BlockSize
	if blockSize <= 0 {
		blockSize = frameSize
	}
	s.logger.Debug("Delta encoding with block size %d", blockSize)
	return stream.NewXor(rd, blockSize)
}

// tapForDump inserts a frame tap feeding the debug dump. Dump failures are
// logged and ignored; debugging must not take the stream down.
func (s *Streamer) tapForDump(rd io.Reader, frameSize int, cfg Config) (io.Reader, error) {
	every := cfg.DumpEvery
	if every < 1 {
		every = 1
	}
	width, height := cfg.Region.Width, cfg.Region.Height
	mono := cfg.Monochrome
	return stream.NewTap(rd, frameSize, func(index int, frame []byte) {
		if index%every != 0 {
			return
		}
		var err error
		if mono {
			err = s.dump.SavePackedFrame(index, frame, width, height)
		} else {
			err = s.dump.SaveRawFrame(index, frame)
		}
		if err != nil {
			s.logger.Warn("Failed to dump frame %d: %s", index, err)
		}
	})
}
