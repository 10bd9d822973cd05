package ports

import (
	"io"
)

// Sink abstracts the destination of the compressed stream.
//
// Open establishes the destination (opens the file, dials the connection)
// and returns a writer the compressor wraps. Sink write failures are fatal
// for the pipeline; no sink retries writes.
type Sink interface {
	// Open prepares the sink for writing.
	Open() (io.WriteCloser, error)

	// Name returns a human-readable description of the destination.
	Name() string
}
