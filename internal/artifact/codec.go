package artifact

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Format names a raster encoding used for band artifacts and final frames.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
)

// ParseFormat accepts a format name or a file extension, with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "tga":
		return TGA, nil
	}
	return "", fmt.Errorf("artifact: unknown format %q", s)
}

// FormatFor picks the format from a file name's extension.
func FormatFor(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the MIME type stored alongside the blob.
func (f Format) ContentType() string {
	switch f {
	case WebP:
		return "image/webp"
	case TGA:
		return "image/x-tga"
	}
	return "image/png"
}

// Encode writes img to w in format f.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	case TGA:
		return tga.Encode(w, img)
	}
	return fmt.Errorf("artifact: unknown format %q", string(f))
}

// Decode reads an image in format f and converts it to NRGBA.
func (f Format) Decode(r io.Reader) (*image.NRGBA, error) {
	var (
		img image.Image
		err error
	)
	switch f {
	case PNG:
		img, err = png.Decode(r)
	case WebP:
		img, err = nativewebp.Decode(r)
	case TGA:
		img, err = tga.Decode(r)
	default:
		return nil, fmt.Errorf("artifact: unknown format %q", string(f))
	}
	if err != nil {
		return nil, fmt.Errorf("artifact: decode %s: %w", f, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA format, rebased to the origin.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
