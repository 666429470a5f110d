package raster

import (
	"image"
	"image/color"
)

// Buffer holds one band's pixels as a flat slice for cache locality.
// It is owned by a single worker and never shared.
type Buffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

// NewBuffer allocates a zeroed (transparent black) buffer.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}

// Set writes c at (x, y).
func (b *Buffer) Set(x, y int, c color.NRGBA) {
	i := (y*b.Width + x) * 4
	b.Color[i] = c.R
	b.Color[i+1] = c.G
	b.Color[i+2] = c.B
	b.Color[i+3] = c.A
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) color.NRGBA {
	i := (y*b.Width + x) * 4
	return color.NRGBA{R: b.Color[i], G: b.Color[i+1], B: b.Color[i+2], A: b.Color[i+3]}
}

// Image copies the buffer into an NRGBA image.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Color)
	return img
}
