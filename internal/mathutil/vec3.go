package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a 3-component float32 vector (value type, stack-allocated).
type Vec3 = mgl32.Vec3

// V3 is shorthand for building a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// DistSqr returns the squared distance between a and b.
func DistSqr(a, b Vec3) float32 {
	return a.Sub(b).LenSqr()
}

// NormalizeOrZero returns v scaled to unit length.
// Degenerate input (zero, denormal or non-finite length) yields the zero vector, never NaN.
func NormalizeOrZero(v Vec3) Vec3 {
	l := v.Len()
	if l < 1e-30 || math.IsInf(float64(l), 0) || math.IsNaN(float64(l)) {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Sin is a float32 shim over math.Sin.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}
