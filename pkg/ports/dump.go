package ports

// FrameDump abstracts debug output of intermediate frames.
// It allows saving frames as they leave the pipeline for offline inspection.
type FrameDump interface {
	// Enabled returns true if frame dumping is enabled.
	Enabled() bool

	// SaveRawFrame saves one native frame as captured from the device.
	SaveRawFrame(index int, data []byte) error

	// SavePackedFrame saves one packed monochrome frame, rendering a
	// PNG preview alongside the raw bits.
	SavePackedFrame(index int, data []byte, width, height int) error
}
