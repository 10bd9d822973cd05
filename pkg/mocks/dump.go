package mocks

import (
	"sync"

	"github.com/user/restream/pkg/ports"
)

// FrameDump is a mock implementation of ports.FrameDump.
type FrameDump struct {
	mu sync.Mutex

	enabled bool

	RawFrames    map[int][]byte
	PackedFrames map[int][]byte

	SaveRawFrameFunc    func(index int, data []byte) error
	SavePackedFrameFunc func(index int, data []byte, width, height int) error
}

// NewFrameDump creates a new mock FrameDump.
func NewFrameDump(enabled bool) *FrameDump {
	return &FrameDump{
		enabled:      enabled,
		RawFrames:    make(map[int][]byte),
		PackedFrames: make(map[int][]byte),
	}
}

func (m *FrameDump) Enabled() bool {
	return m.enabled
}

func (m *FrameDump) SaveRawFrame(index int, data []byte) error {
	if m.SaveRawFrameFunc != nil {
		return m.SaveRawFrameFunc(index, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RawFrames[index] = append([]byte{}, data...)
	return nil
}

func (m *FrameDump) SavePackedFrame(index int, data []byte, width, height int) error {
	if m.SavePackedFrameFunc != nil {
		return m.SavePackedFrameFunc(index, data, width, height)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PackedFrames[index] = append([]byte{}, data...)
	return nil
}

var _ ports.FrameDump = (*FrameDump)(nil)
