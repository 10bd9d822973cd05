// Package rawcompressor passes the stream through uncompressed.
package rawcompressor

import (
	"io"

	"github.com/user/restream/pkg/ports"
)

// Compressor implements ports.Compressor without compressing. Useful when
// the sink already compresses (an ssh -C tunnel) or for debugging the raw
// delta stream.
type Compressor struct{}

// New creates a new passthrough compressor.
func New() *Compressor {
	return &Compressor{}
}

// NewWriter returns a writer that forwards to w unchanged. Close does not
// close the underlying sink writer; the pipeline owns it.
func (c *Compressor) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// Name returns the compressor's short name.
func (c *Compressor) Name() string {
	return "none"
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

var _ ports.Compressor = (*Compressor)(nil)
