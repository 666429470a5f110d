package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled frame to w×h with CatmullRom filtering.
// Frames are opaque, so no alpha premultiplication is needed.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Stack copies bands into one frame, top to bottom, at increasing vertical
// offsets. All bands must share width w.
func Stack(bands []*image.NRGBA, w int) *image.NRGBA {
	h := 0
	for _, b := range bands {
		h += b.Bounds().Dy()
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	y := 0
	for _, b := range bands {
		r := image.Rect(0, y, w, y+b.Bounds().Dy())
		draw.Draw(dst, r, b, b.Bounds().Min, draw.Src)
		y += b.Bounds().Dy()
	}
	return dst
}
