package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
)

// encodeAll drains an encoder in fixed-size chunks.
func encodeAll(t *testing.T, plain []byte, blockSize, chunk int) []byte {
	t.Helper()
	enc, err := NewXor(bytes.NewReader(plain), blockSize)
	if err != nil {
		t.Fatalf("NewXor failed: %v", err)
	}
	var out bytes.Buffer
	buf := make([]byte, chunk)
	for {
		n, err := enc.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			return out.Bytes()
		}
		if err != nil {
			t.Fatalf("encode read: %v", err)
		}
	}
}

// decodeAll drains a decoder in fixed-size chunks, accepting the unexpected
// EOF a stream cut at an arbitrary point produces.
func decodeAll(t *testing.T, diff []byte, blockSize, chunk int) []byte {
	t.Helper()
	dec, err := NewUnxor(bytes.NewReader(diff), blockSize)
	if err != nil {
		t.Fatalf("NewUnxor failed: %v", err)
	}
	var out bytes.Buffer
	buf := make([]byte, chunk)
	for {
		n, err := dec.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return out.Bytes()
		}
		if err != nil {
			t.Fatalf("decode read: %v", err)
		}
	}
}

func TestXor_RoundTrip(t *testing.T) {
	for _, blockSize := range []int{1, 4, 8, 16} {
		for _, length := range []int{0, 1, 7, 8, 16, 37, 3 * 16} {
			t.Run(fmt.Sprintf("block%d_len%d", blockSize, length), func(t *testing.T) {
				plain := make([]byte, length)
				for i := range plain {
					plain[i] = byte(i*31 + 7)
				}

				// Both sides fed in equal-size chunks.
				diff := encodeAll(t, plain, blockSize, 5)
				got := decodeAll(t, diff, blockSize, 5)

				if !bytes.Equal(got, plain) {
					t.Errorf("round trip mismatch: expected %v, got %v", plain, got)
				}
			})
		}
	}
}

func TestXor_FirstBlockPassesThrough(t *testing.T) {
	// The ring starts all zero, so the first block XORs with zeros.
	plain := []byte{1, 2, 3, 4}
	diff := encodeAll(t, plain, 4, 4)
	if !bytes.Equal(diff, plain) {
		t.Errorf("expected first block unchanged, got %v", diff)
	}
}

func TestXor_IdenticalBlockEncodesToZeros(t *testing.T) {
	block := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x10, 0x20, 0x30, 0x40}
	plain := append(append([]byte{}, block...), block...)

	diff := encodeAll(t, plain, len(block), len(block))

	if !bytes.Equal(diff[:len(block)], block) {
		t.Errorf("expected first block unchanged, got %v", diff[:len(block)])
	}
	for i, b := range diff[len(block):] {
		if b != 0 {
			t.Errorf("expected all-zero diff for repeated block, byte %d is 0x%02X", i, b)
		}
	}
}

func TestXor_RingHoldsPlaintextNotDiff(t *testing.T) {
	// Three equal blocks: if the ring stored diff bytes instead of
	// plaintext, the third block would not collapse to zeros.
	block := []byte{9, 8, 7, 6}
	plain := append(append(append([]byte{}, block...), block...), block...)

	diff := encodeAll(t, plain, len(block), len(block))
	for i, b := range diff[len(block):] {
		if b != 0 {
			t.Errorf("expected zeros after first block, byte %d is 0x%02X", i, b)
		}
	}
}

func TestUnxor_ShortReadSurfacesViolation(t *testing.T) {
	plain := []byte{10, 20, 30, 40, 50}
	diff := encodeAll(t, plain, 4, len(plain))

	dec, err := NewUnxor(bytes.NewReader(diff), 4)
	if err != nil {
		t.Fatalf("NewUnxor failed: %v", err)
	}

	buf := make([]byte, 16)
	n, err := dec.Read(buf)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if n != len(plain) {
		t.Fatalf("expected %d decoded bytes, got %d", len(plain), n)
	}
	if !bytes.Equal(buf[:n], plain) {
		t.Errorf("expected decodable tail %v, got %v", plain, buf[:n])
	}
}

func TestUnxor_CleanEOF(t *testing.T) {
	plain := []byte{1, 2, 3, 4}
	diff := encodeAll(t, plain, 4, 4)

	dec, err := NewUnxor(bytes.NewReader(diff), 4)
	if err != nil {
		t.Fatalf("NewUnxor failed: %v", err)
	}

	buf := make([]byte, 4)
	if _, err := dec.Read(buf); err != nil {
		t.Fatalf("read full buffer: %v", err)
	}
	n, err := dec.Read(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("expected clean EOF, got n=%d err=%v", n, err)
	}
}

func TestXor_RejectsInvalidBlockSize(t *testing.T) {
	if _, err := NewXor(bytes.NewReader(nil), 0); err == nil {
		t.Error("expected error for block size 0")
	}
	if _, err := NewUnxor(bytes.NewReader(nil), -1); err == nil {
		t.Error("expected error for negative block size")
	}
}

func TestXor_MismatchedBlockSizeCorrupts(t *testing.T) {
	// Not a guarantee of the codec, but the contract the CLIs document:
	// differing block sizes must not silently round-trip.
	plain := []byte{1, 2, 3, 4, 5, 6, 7, 8, 1, 2, 3, 4, 5, 6, 7, 8}
	diff := encodeAll(t, plain, 8, 8)
	got := decodeAll(t, diff, 4, 8)
	if bytes.Equal(got, plain) {
		t.Error("expected corruption with mismatched block sizes")
	}
}
