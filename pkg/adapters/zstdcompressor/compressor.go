// Package zstdcompressor compresses the stream with zstandard.
package zstdcompressor

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/user/restream/pkg/ports"
)

// Compressor implements ports.Compressor using klauspost's zstd encoder at
// its fastest level; the stream is produced in real time, so throughput
// beats ratio.
type Compressor struct{}

// New creates a new zstd compressor.
func New() *Compressor {
	return &Compressor{}
}

// NewWriter returns a writer compressing into w.
func (c *Compressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("configure zstd writer: %w", err)
	}
	return zw, nil
}

// Name returns the compressor's short name.
func (c *Compressor) Name() string {
	return "zstd"
}

var _ ports.Compressor = (*Compressor)(nil)
