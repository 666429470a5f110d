// Package camera maps image pixels to photons for an orthographic camera and
// cuts a camera into horizontal bands that render independently.
package camera

import (
	"errors"
	"fmt"

	"lensing-renderer/internal/mathutil"
	"lensing-renderer/internal/photon"
)

var (
	// ErrNoBands is returned when a split into fewer than one band is requested.
	ErrNoBands = errors.New("camera: band count must be at least 1")
	// ErrTooManyBands is returned when a split would produce empty bands.
	ErrTooManyBands = errors.New("camera: more bands than rows")
	// ErrRowRange is returned by Subdivide for an empty or out-of-range row range.
	ErrRowRange = errors.New("camera: invalid row range")
)

// Ortho is an orthographic camera. All rays share the direction
// Subject - Pos and start on the image plane through Pos.
type Ortho struct {
	Pos      mathutil.Vec3
	Subject  mathutil.Vec3
	Screen   Screen
	Exposure float32

	band    int
	hasBand bool
}

// New creates an unsplit camera.
func New(pos, subject mathutil.Vec3, width, height float32, resWidth, resHeight int, exposure float32) Ortho {
	return Ortho{
		Pos:     pos,
		Subject: subject,
		Screen: Screen{
			Width:     width,
			Height:    height,
			ResWidth:  resWidth,
			ResHeight: resHeight,
		},
		Exposure: exposure,
	}
}

// BandIndex reports the band this camera renders, if it came from Split or
// Subdivide.
func (c Ortho) BandIndex() (int, bool) {
	return c.band, c.hasBand
}

// Basis returns the horizontal and vertical unit vectors of the image plane.
// The horizontal axis is perpendicular to the view direction in the xy plane;
// a camera looking straight along z has no defined basis and yields zeros.
func (c Ortho) Basis() (xBasis, yBasis mathutil.Vec3) {
	dir := c.Subject.Sub(c.Pos)
	xBasis = mathutil.NormalizeOrZero(mathutil.V3(-dir[1], dir[0], 0))
	yBasis = mathutil.NormalizeOrZero(xBasis.Cross(dir))
	return xBasis, yBasis
}

// PixelToClipPos returns the world-space point on the image plane for pixel
// (x, y). Offsets are measured from the integer center (ResWidth/2, ResHeight/2).
func (c Ortho) PixelToClipPos(x, y int) mathutil.Vec3 {
	xBasis, yBasis := c.Basis()

	dx := x - c.Screen.ResWidth/2
	dy := y - c.Screen.ResHeight/2

	sx := c.Screen.Width / float32(c.Screen.ResWidth) * float32(dx)
	sy := c.Screen.Height / float32(c.Screen.ResHeight) * float32(dy)

	return c.Pos.Add(xBasis.Mul(sx)).Add(yBasis.Mul(sy))
}

// PixelToPhoton seeds the photon for pixel (x, y).
func (c Ortho) PixelToPhoton(x, y int) photon.Photon {
	return photon.New(c.PixelToClipPos(x, y), c.Subject.Sub(c.Pos))
}

// Subdivide returns the camera that renders rows [rowStart, rowEnd) of c as
// a standalone image. The child is centered on the parent's ray origin at the
// integer middle row, so its pixel rows land exactly on the parent's.
func (c Ortho) Subdivide(rowStart, rowEnd, band int) (Ortho, error) {
	if rowStart < 0 || rowEnd > c.Screen.ResHeight || rowStart >= rowEnd {
		return Ortho{}, fmt.Errorf("%w: [%d, %d) of %d rows", ErrRowRange, rowStart, rowEnd, c.Screen.ResHeight)
	}

	rows := rowEnd - rowStart
	pos := c.PixelToClipPos(c.Screen.ResWidth/2, (rowStart+rowEnd)/2)
	offset := pos.Sub(c.Pos)

	child := c
	child.Pos = pos
	child.Subject = c.Subject.Add(offset)
	child.Screen.Height = c.Screen.Height * float32(rows) / float32(c.Screen.ResHeight)
	child.Screen.ResHeight = rows
	child.band = band
	child.hasBand = true
	return child, nil
}

// Rows partitions [0, ResHeight) into n contiguous ranges. Every range gets
// ResHeight/n rows except the last, which also takes the remainder.
func (c Ortho) Rows(n int) ([][2]int, error) {
	if n < 1 {
		return nil, ErrNoBands
	}
	if n > c.Screen.ResHeight {
		return nil, fmt.Errorf("%w: %d bands for %d rows", ErrTooManyBands, n, c.Screen.ResHeight)
	}

	step := c.Screen.ResHeight / n
	ranges := make([][2]int, 0, n)
	start := 0
	for i := 0; i < n-1; i++ {
		ranges = append(ranges, [2]int{start, start + step})
		start += step
	}
	ranges = append(ranges, [2]int{start, c.Screen.ResHeight})
	return ranges, nil
}

// Split cuts c into n band cameras tagged 0..n-1 from top to bottom.
func (c Ortho) Split(n int) ([]Ortho, error) {
	ranges, err := c.Rows(n)
	if err != nil {
		return nil, err
	}

	bands := make([]Ortho, 0, n)
	for i, r := range ranges {
		sub, err := c.Subdivide(r[0], r[1], i)
		if err != nil {
			return nil, err
		}
		bands = append(bands, sub)
	}
	return bands, nil
}
