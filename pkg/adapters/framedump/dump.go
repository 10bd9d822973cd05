// Package framedump saves pipeline frames as debug artifacts.
package framedump

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/user/restream/pkg/ports"
)

// maxPreviewWidth caps PNG preview dimensions; full-resolution previews of
// an 1872-row frame are needlessly large for eyeballing packing bugs.
const maxPreviewWidth = 704

// Dump implements ports.FrameDump writing artifacts under a base directory:
// raw frames as frames/raw/frame-NNNNNN.bin, packed monochrome frames as
// frames/packed/frame-NNNNNN.bin plus a rendered PNG preview.
type Dump struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a frame dump rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Dump {
	return &Dump{baseDir: baseDir, fs: fs}
}

// Enabled returns true as this dump saves output.
func (d *Dump) Enabled() bool {
	return true
}

// SaveRawFrame saves one native frame as captured.
func (d *Dump) SaveRawFrame(index int, data []byte) error {
	path := filepath.Join(d.baseDir, "frames", "raw", fmt.Sprintf("frame-%06d.bin", index))
	return d.fs.WriteFile(path, data)
}

// SavePackedFrame saves one packed monochrome frame and a PNG preview.
func (d *Dump) SavePackedFrame(index int, data []byte, width, height int) error {
	binPath := filepath.Join(d.baseDir, "frames", "packed", fmt.Sprintf("frame-%06d.bin", index))
	if err := d.fs.WriteFile(binPath, data); err != nil {
		return err
	}

	img, err := renderPacked(data, width, height)
	if err != nil {
		return fmt.Errorf("render frame %d: %w", index, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode frame %d preview: %w", index, err)
	}
	pngPath := filepath.Join(d.baseDir, "frames", "packed", fmt.Sprintf("frame-%06d.png", index))
	return d.fs.WriteFile(pngPath, buf.Bytes())
}

// renderPacked expands packed bits into a grayscale image, bit 1 (pixel
// drawn) as black, and downscales wide frames for viewing.
func renderPacked(data []byte, width, height int) (image.Image, error) {
	if width*height != len(data)*8 {
		return nil, fmt.Errorf("%d packed bytes do not match %dx%d pixels", len(data), width, height)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i, b := range data {
		for bit := 0; bit < 8; bit++ {
			shade := uint8(0xFF)
			if b&(0x80>>bit) != 0 {
				shade = 0x00
			}
			img.Pix[i*8+bit] = shade
		}
	}

	if width <= maxPreviewWidth {
		return img, nil
	}
	tw, th := width, height
	for tw > maxPreviewWidth {
		tw /= 2
		th /= 2
	}
	scaled := image.NewGray(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled, nil
}

var _ ports.FrameDump = (*Dump)(nil)
