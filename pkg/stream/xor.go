package stream

import (
	"fmt"
	"io"
)

// Xor delta-encodes a byte stream to improve its compressibility.
//
// For every byte it emits the XOR of that byte with the byte that occupied
// the same position modulo the block size one block earlier, starting from
// an assumed all-zero block. Consecutive frames of a mostly-static display
// differ in only a few regions, so most diff bytes are zero. Unxor reverses
// the encoding; both sides must use the same block size and see the stream
// byte-for-byte from its start.
type Xor struct {
	src  io.Reader
	ring []byte
	head int
}

// NewXor creates an encoder over src with the given block size.
func NewXor(src io.Reader, blockSize int) (*Xor, error) {
	if blockSize < 1 {
		return nil, fmt.Errorf("invalid block size %d", blockSize)
	}
	return &Xor{src: src, ring: make([]byte, blockSize)}, nil
}

// Read fills p with diff bytes. The ring always holds the plaintext most
// recently seen at each block-relative position, never the encoded value.
func (x *Xor) Read(p []byte) (int, error) {
	n, err := x.src.Read(p)
	for i := 0; i < n; i++ {
		prev := x.ring[x.head]
		x.ring[x.head] = p[i]
		p[i] ^= prev

		x.head++
		if x.head == len(x.ring) {
			x.head = 0
		}
	}
	return n, err
}

// Unxor reverses the delta encoding produced by Xor.
type Unxor struct {
	src  io.Reader
	ring []byte
	head int
}

// NewUnxor creates a decoder over src with the given block size. It must
// match the encoder's block size exactly or every decoded byte is garbage.
func NewUnxor(src io.Reader, blockSize int) (*Unxor, error) {
	if blockSize < 1 {
		return nil, fmt.Errorf("invalid block size %d", blockSize)
	}
	return &Unxor{src: src, ring: make([]byte, blockSize)}, nil
}

// Read requires an exact read of len(p) diff bytes from the wrapped source;
// partial diff bytes cannot be un-diffed meaningfully. Bytes that did arrive
// before a mid-buffer EOF are still decoded and returned together with
// io.ErrUnexpectedEOF so a stream cut at an arbitrary point flushes every
// decodable byte. A clean EOF at a read boundary surfaces as io.EOF.
func (u *Unxor) Read(p []byte) (int, error) {
	n, err := io.ReadFull(u.src, p)
	for i := 0; i < n; i++ {
		p[i] ^= u.ring[u.head]
		u.ring[u.head] = p[i]

		u.head++
		if u.head == len(u.ring) {
			u.head = 0
		}
	}
	return n, err
}

var (
	_ io.Reader = (*Xor)(nil)
	_ io.Reader = (*Unxor)(nil)
)
