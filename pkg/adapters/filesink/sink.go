// Package filesink writes the stream to a local file or standard output.
package filesink

import (
	"fmt"
	"io"
	"os"

	"github.com/user/restream/pkg/ports"
)

// StdoutPath selects standard output as the destination.
const StdoutPath = "-"

// Sink implements ports.Sink over a local file. The path "-" streams to
// stdout, which is what pipes the output through ssh to a host-side player.
type Sink struct {
	path string
}

// New creates a sink writing to path.
func New(path string) *Sink {
	return &Sink{path: path}
}

// Open opens the destination for writing.
func (s *Sink) Open() (io.WriteCloser, error) {
	if s.path == StdoutPath {
		// Stdout is process-owned; Close must not close it.
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(s.path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.path, err)
	}
	return f, nil
}

// Name returns the destination description.
func (s *Sink) Name() string {
	if s.path == StdoutPath {
		return "stdout"
	}
	return s.path
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

var _ ports.Sink = (*Sink)(nil)
