package stream

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestMono_PacksTwoBytePixels(t *testing.T) {
	// Pixels: on,on,off,on,on,on,on,on. A pixel is on when both bytes
	// are zero.
	native := []byte{0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	m, err := NewMono(bytes.NewReader(native), 8, 1, 2)
	if err != nil {
		t.Fatalf("NewMono failed: %v", err)
	}

	packed := make([]byte, 1)
	if _, err := io.ReadFull(m, packed); err != nil {
		t.Fatalf("read packed frame: %v", err)
	}
	if packed[0] != 0xDF {
		t.Errorf("expected 0xDF, got 0x%02X", packed[0])
	}
}

func TestMono_PacksOneBytePixels(t *testing.T) {
	native := []byte{0, 1, 0, 1, 0, 1, 0, 1}
	m, err := NewMono(bytes.NewReader(native), 8, 1, 1)
	if err != nil {
		t.Fatalf("NewMono failed: %v", err)
	}

	packed := make([]byte, 1)
	if _, err := io.ReadFull(m, packed); err != nil {
		t.Fatalf("read packed frame: %v", err)
	}
	if packed[0] != 0xAA {
		t.Errorf("expected 0xAA, got 0x%02X", packed[0])
	}
}

func TestMono_ServesRemainderWithoutRefilling(t *testing.T) {
	// Two 16-pixel frames, 2 packed bytes each. Frame one is all on,
	// frame two all off.
	native := make([]byte, 32)
	for i := 16; i < 32; i++ {
		native[i] = 0xFF
	}
	m, err := NewMono(bytes.NewReader(native), 16, 1, 1)
	if err != nil {
		t.Fatalf("NewMono failed: %v", err)
	}

	one := make([]byte, 1)
	if _, err := m.Read(one); err != nil {
		t.Fatalf("read first byte: %v", err)
	}
	if one[0] != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02X", one[0])
	}

	// One byte remains in the current frame; a larger request returns
	// only that remainder instead of refilling mid-read.
	big := make([]byte, 4)
	n, err := m.Read(big)
	if err != nil {
		t.Fatalf("read remainder: %v", err)
	}
	if n != 1 || big[0] != 0xFF {
		t.Errorf("expected 1 remaining byte 0xFF, got %d bytes %v", n, big[:n])
	}

	// The next read refills with the second (all-off) frame.
	n, err = m.Read(big)
	if err != nil {
		t.Fatalf("read second frame: %v", err)
	}
	if n != 2 || big[0] != 0x00 || big[1] != 0x00 {
		t.Errorf("expected 2 zero bytes from second frame, got %d bytes %v", n, big[:n])
	}
}

func TestMono_PackedFrameSize(t *testing.T) {
	native := make([]byte, 1404*8)
	m, err := NewMono(bytes.NewReader(native), 1404, 8, 1)
	if err != nil {
		t.Fatalf("NewMono failed: %v", err)
	}
	if m.PackedFrameSize() != 1404 {
		t.Errorf("expected packed frame size 1404, got %d", m.PackedFrameSize())
	}
}

func TestMono_RejectsUnsupportedDepth(t *testing.T) {
	for _, depth := range []int{0, 3, 4} {
		_, err := NewMono(bytes.NewReader(nil), 8, 1, depth)
		if !errors.Is(err, ErrUnsupportedDepth) {
			t.Errorf("depth %d: expected ErrUnsupportedDepth, got %v", depth, err)
		}
	}
}

func TestMono_RejectsUnpackableDimensions(t *testing.T) {
	if _, err := NewMono(bytes.NewReader(nil), 3, 1, 1); err == nil {
		t.Error("expected error for 3 pixels per frame")
	}
	if _, err := NewMono(bytes.NewReader(nil), 0, 0, 1); err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestMono_ShortNativeFrameIsFatal(t *testing.T) {
	// 10 bytes where a 16-byte frame is required.
	_, err := NewMono(bytes.NewReader(make([]byte, 10)), 16, 1, 1)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}
