package mocks

import (
	"bytes"
	"io"
	"sync"

	"github.com/user/restream/pkg/ports"
)

// Sink is a mock implementation of ports.Sink capturing written bytes.
type Sink struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool

	OpenErr  error
	WriteErr error
}

// NewSink creates a new mock Sink.
func NewSink() *Sink {
	return &Sink{}
}

func (m *Sink) Open() (io.WriteCloser, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return &sinkWriter{sink: m}, nil
}

func (m *Sink) Name() string {
	return "mock"
}

// Bytes returns everything written so far (for test verification).
func (m *Sink) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte{}, m.buf.Bytes()...)
}

// Closed reports whether the sink writer was closed.
func (m *Sink) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

type sinkWriter struct {
	sink *Sink
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	if w.sink.WriteErr != nil {
		return 0, w.sink.WriteErr
	}
	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()
	return w.sink.buf.Write(p)
}

func (w *sinkWriter) Close() error {
	w.sink.mu.Lock()
	defer w.sink.mu.Unlock()
	w.sink.closed = true
	return nil
}

var _ ports.Sink = (*Sink)(nil)
