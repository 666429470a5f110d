// Package objects holds the visibility set: implicit scene objects that can
// report whether a point lies inside them and, if so, its color.
package objects

import "lensing-renderer/internal/mathutil"

// Color is linear RGB. Channels may exceed 1 before exposure is applied.
type Color [3]float32

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// Visible is implemented by every scene object.
// Overlap must only read the receiver: objects are shared by all render workers.
type Visible interface {
	Overlap(p mathutil.Vec3) (Color, bool)
}

// Set is an ordered collection of scene objects.
type Set []Visible

// Test checks p against the members in insertion order and returns the color
// of the first member that covers it.
func (s Set) Test(p mathutil.Vec3) (Color, bool) {
	for _, obj := range s {
		if c, ok := obj.Overlap(p); ok {
			return c, true
		}
	}
	return Color{}, false
}

// Clone returns an independent copy of the member list.
func (s Set) Clone() Set {
	if len(s) == 0 {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)
	return out
}
