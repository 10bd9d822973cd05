package tcpsink

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"
)

func TestSink_WritesToReceiver(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	sink := New(ln.Addr().String(), time.Second)
	w, err := sink.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	payload := []byte("framebuffer bytes")
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	select {
	case data := <-received:
		if !bytes.Equal(data, payload) {
			t.Errorf("expected %q, got %q", payload, data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("receiver never saw the payload")
	}
}

func TestSink_OpenFailsWithoutReceiver(t *testing.T) {
	// Reserve a port, then close the listener so nothing is accepting.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	sink := New(addr, time.Second)
	if _, err := sink.Open(); err == nil {
		t.Error("expected dial error without a receiver")
	}
}

func TestSink_Name(t *testing.T) {
	sink := New("10.11.99.2:1234", 0)
	if sink.Name() != "tcp://10.11.99.2:1234" {
		t.Errorf("unexpected name %q", sink.Name())
	}
}

func TestSink_DefaultWriteTimeout(t *testing.T) {
	sink := New("example:1", 0)
	if sink.writeTimeout != defaultWriteTimeout {
		t.Errorf("expected default write timeout, got %v", sink.writeTimeout)
	}
}
