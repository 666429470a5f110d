package objects

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"lensing-renderer/internal/mathutil"
)

// Sphere is a solid ball of flat color.
type Sphere struct {
	Pos mathutil.Vec3
	Rad float32
	Col Color
}

func (s Sphere) Overlap(p mathutil.Vec3) (Color, bool) {
	if mathutil.DistSqr(p, s.Pos) <= s.Rad*s.Rad {
		return s.Col, true
	}
	return Color{}, false
}

// Blobs is a sphere perturbed by a sinusoidal noise term, giving a lumpy
// implicit surface of flat color.
type Blobs struct {
	Pos   mathutil.Vec3
	Scale float32
	Size  float32
	Col   Color
}

func (b Blobs) Overlap(p mathutil.Vec3) (Color, bool) {
	l := p.Sub(b.Pos).Mul(1 / b.Scale)
	v := l.LenSqr() + mathutil.Sin(4*l[0]) + mathutil.Sin(4*l[1]) + mathutil.Sin(4*l[2])
	if v <= b.Size {
		return b.Col, true
	}
	return Color{}, false
}

// Disk is a thin annulus in the local xy plane, shaded with concentric and
// spiral bands like an accretion disk.
type Disk struct {
	Pos      mathutil.Vec3
	OuterRad float32
	InnerRad float32
	Height   float32
	Col      Color
}

func (d Disk) Overlap(p mathutil.Vec3) (Color, bool) {
	l := p.Sub(d.Pos)
	if mgl32.Abs(l[2]) >= d.Height/2 {
		return Color{}, false
	}
	rSqr := l[0]*l[0] + l[1]*l[1]
	if rSqr < d.InnerRad*d.InnerRad || rSqr > d.OuterRad*d.OuterRad {
		return Color{}, false
	}
	return d.Col.Scale(d.grey(l[0], l[1], rSqr)), true
}

func (d Disk) grey(x, y, rSqr float32) float32 {
	theta := float32(math.Atan2(float64(y), float64(x)))
	r := float32(math.Sqrt(float64(rSqr)))
	r07 := float32(math.Pow(float64(rSqr), 0.7))

	phase1 := 2 * r / d.InnerRad
	phase2 := 3.24*r07/d.InnerRad + theta
	phase3 := 1.7*r/d.InnerRad + 2*theta
	phase4 := rSqr/d.InnerRad + theta
	phase5 := 0.2*rSqr/d.InnerRad + 2*theta

	bands := mgl32.Abs(mathutil.Sin(phase1)) +
		0.1*mathutil.Sin(phase2) -
		0.2*mathutil.Sin(phase3) +
		0.2*mathutil.Sin(phase4) +
		0.5*mathutil.Sin(phase5)

	fade := 1 - rSqr/(d.OuterRad*d.OuterRad)
	ramp := mgl32.Clamp(5*(rSqr-d.InnerRad)/d.InnerRad, 0, 1)
	return (2.5 + bands) * fade * ramp
}
