// Package tcpsink streams output over a TCP connection.
package tcpsink

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/user/restream/pkg/ports"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultWriteTimeout = 3 * time.Second
)

// Sink implements ports.Sink over a TCP connection.
//
// Every write carries a bounded deadline, the pipeline's only backpressure
// safeguard: a receiver that stops draining would otherwise stall the
// capture loop arbitrarily far behind real time. A deadline hit is fatal,
// never retried.
type Sink struct {
	addr         string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

// New creates a sink dialing addr. A non-positive writeTimeout selects the
// 3 second default.
func New(addr string, writeTimeout time.Duration) *Sink {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Sink{
		addr:         addr,
		dialTimeout:  defaultDialTimeout,
		writeTimeout: writeTimeout,
	}
}

// Open dials the receiver.
func (s *Sink) Open() (io.WriteCloser, error) {
	conn, err := net.DialTimeout("tcp", s.addr, s.dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", s.addr, err)
	}
	return &deadlineWriter{conn: conn, timeout: s.writeTimeout}, nil
}

// Name returns the destination description.
func (s *Sink) Name() string {
	return "tcp://" + s.addr
}

// deadlineWriter arms a fresh write deadline before every write.
type deadlineWriter struct {
	conn    net.Conn
	timeout time.Duration
}

func (w *deadlineWriter) Write(p []byte) (int, error) {
	if err := w.conn.SetWriteDeadline(time.Now().Add(w.timeout)); err != nil {
		return 0, fmt.Errorf("set write deadline: %w", err)
	}
	return w.conn.Write(p)
}

func (w *deadlineWriter) Close() error {
	return w.conn.Close()
}

var _ ports.Sink = (*Sink)(nil)
