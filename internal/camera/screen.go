package camera

import "iter"

// Screen describes the image plane: its size in world units and its
// resolution in pixels.
type Screen struct {
	Width     float32
	Height    float32
	ResWidth  int
	ResHeight int
}

// Pixels yields every pixel coordinate in row-major order: x fastest, rows
// from the top (y = 0) down. The sequence can be ranged over any number of
// times.
func (s Screen) Pixels() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for y := 0; y < s.ResHeight; y++ {
			for x := 0; x < s.ResWidth; x++ {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

// Len returns the number of pixels on the screen.
func (s Screen) Len() int {
	return s.ResWidth * s.ResHeight
}
