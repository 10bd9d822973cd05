// Package lz4compressor compresses the stream into LZ4 frames.
package lz4compressor

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/user/restream/pkg/ports"
)

// Compressor implements ports.Compressor using pierrec/lz4 streaming frames.
//
// The LZ4 block size caps how many bytes buffer up before a block is
// flushed to the sink. Packed monochrome frames are only a few hundred
// kilobytes, so the default 4 MiB block would hold many frames back and add
// seconds of latency; callers streaming monochrome should pass a small
// block size.
type Compressor struct {
	blockSize lz4.BlockSize
}

// New creates a compressor flushing blocks of roughly maxBlockBytes.
// Zero or negative selects the largest block size (best ratio).
func New(maxBlockBytes int) *Compressor {
	return &Compressor{blockSize: pickBlockSize(maxBlockBytes)}
}

// NewWriter returns a writer compressing into w.
func (c *Compressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	opts := []lz4.Option{
		lz4.BlockSizeOption(c.blockSize),
		lz4.CompressionLevelOption(lz4.Fast),
	}
	if err := zw.Apply(opts...); err != nil {
		return nil, fmt.Errorf("configure lz4 writer: %w", err)
	}
	return zw, nil
}

// Name returns the compressor's short name.
func (c *Compressor) Name() string {
	return "lz4"
}

// pickBlockSize maps a byte budget to the nearest LZ4 frame block size.
func pickBlockSize(maxBlockBytes int) lz4.BlockSize {
	switch {
	case maxBlockBytes <= 0:
		return lz4.Block4Mb
	case maxBlockBytes <= 64<<10:
		return lz4.Block64Kb
	case maxBlockBytes <= 256<<10:
		return lz4.Block256Kb
	case maxBlockBytes <= 1<<20:
		return lz4.Block1Mb
	default:
		return lz4.Block4Mb
	}
}

var _ ports.Compressor = (*Compressor)(nil)
