package ports

import (
	"io"
)

// Compressor abstracts the streaming compressor at the end of the pipeline.
//
// NewWriter wraps the sink writer; the pipeline writes raw (already
// delta-encoded) bytes to the returned writer and closes it on shutdown to
// flush any buffered block.
type Compressor interface {
	// NewWriter returns a writer that compresses into w.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// Name returns the compressor's short name for logging.
	Name() string
}
