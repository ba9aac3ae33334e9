// Package raster provides the in-memory pixel buffer the refinement engine
// operates on. Buffers are contiguous and row-major (index = (y*width+x)*channels),
// mutated in place by each processing stage, and never shared across calls.
package raster

import (
	"image"
	"image/color"

	"github.com/garmentfx/ghostmask/internal/faults"
)

// OpaqueThreshold is the alpha value from which a pixel counts as opaque.
const OpaqueThreshold = 128

// Image owns a contiguous pixel buffer.
// Invariant: len(Pix) == Width*Height*Channels.
type Image struct {
	Width      int
	Height     int
	Channels   int    // 3 (RGB) or 4 (RGBA)
	ColorSpace string // informational tag, e.g. "srgb"
	Pix        []uint8
}

// New allocates a zeroed raster. Channels must be 3 or 4.
func New(width, height, channels int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, faults.Configf("dimensions", "must be positive, got %dx%d", width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, faults.Configf("channels", "must be 3 or 4, got %d", channels)
	}
	return &Image{
		Width:      width,
		Height:     height,
		Channels:   channels,
		ColorSpace: "srgb",
		Pix:        make([]uint8, width*height*channels),
	}, nil
}

// FromImage decodes a standard image into an RGBA raster.
func FromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := &Image{
		Width:      w,
		Height:     h,
		Channels:   4,
		ColorSpace: "srgb",
		Pix:        make([]uint8, w*h*4),
	}
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.Pix[i+0] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
			out.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	return out
}

// Clone returns a deep copy. Stages that must degrade to their input on
// failure operate on a clone.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{
		Width:      m.Width,
		Height:     m.Height,
		Channels:   m.Channels,
		ColorSpace: m.ColorSpace,
		Pix:        pix,
	}
}

// Offset returns the buffer index of the first channel of pixel (x, y).
func (m *Image) Offset(x, y int) int {
	return (y*m.Width + x) * m.Channels
}

// Alpha returns the opacity of pixel (x, y). RGB rasters are fully opaque.
func (m *Image) Alpha(x, y int) uint8 {
	if m.Channels < 4 {
		return 255
	}
	return m.Pix[m.Offset(x, y)+3]
}

// SetAlpha sets the opacity of pixel (x, y). No-op on RGB rasters.
func (m *Image) SetAlpha(x, y int, a uint8) {
	if m.Channels < 4 {
		return
	}
	m.Pix[m.Offset(x, y)+3] = a
}

// RGB returns the color channels of pixel (x, y).
func (m *Image) RGB(x, y int) (r, g, b uint8) {
	off := m.Offset(x, y)
	return m.Pix[off], m.Pix[off+1], m.Pix[off+2]
}

// SetRGB sets the color channels of pixel (x, y), leaving alpha untouched.
func (m *Image) SetRGB(x, y int, r, g, b uint8) {
	off := m.Offset(x, y)
	m.Pix[off+0] = r
	m.Pix[off+1] = g
	m.Pix[off+2] = b
}

// OpaqueCount counts pixels whose alpha is at or above OpaqueThreshold.
func (m *Image) OpaqueCount() int {
	if m.Channels < 4 {
		return m.Width * m.Height
	}
	count := 0
	for i := 3; i < len(m.Pix); i += 4 {
		if m.Pix[i] >= OpaqueThreshold {
			count++
		}
	}
	return count
}

// ToImage converts the raster back to a standard RGBA image for encoding.
func (m *Image) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			r, g, b := m.RGB(x, y)
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: m.Alpha(x, y)})
		}
	}
	return out
}
