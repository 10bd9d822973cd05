// Package nulldump provides a no-op frame dump implementation.
package nulldump

import (
	"github.com/user/restream/pkg/ports"
)

// Dump discards all frames. Used when frame dumping is disabled.
type Dump struct{}

// New creates a new no-op dump.
func New() *Dump {
	return &Dump{}
}

// Enabled returns false as no output is saved.
func (d *Dump) Enabled() bool {
	return false
}

// SaveRawFrame does nothing.
func (d *Dump) SaveRawFrame(index int, data []byte) error {
	return nil
}

// SavePackedFrame does nothing.
func (d *Dump) SavePackedFrame(index int, data []byte, width, height int) error {
	return nil
}

var _ ports.FrameDump = (*Dump)(nil)
