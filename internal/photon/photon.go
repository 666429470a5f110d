// Package photon integrates light rays through a Newtonian point-mass field.
//
// The scheme is a first-order Euler update: each step the direction picks up
// G*m/r² toward every mass, scaled by the squared step size, and is then
// renormalized. It is not a geodesic solver; curvature depends on StepSize.
package photon

import (
	"lensing-renderer/internal/masses"
	"lensing-renderer/internal/mathutil"
	"lensing-renderer/internal/objects"
)

// G is the gravitational constant of the model.
const G float32 = 10.0

// Photon is a traced light sample. Dir is unit length, or zero once the
// accumulated forces cancel exactly.
type Photon struct {
	Pos mathutil.Vec3
	Dir mathutil.Vec3
}

// New creates a photon at pos heading along dir. dir need not be normalized.
func New(pos, dir mathutil.Vec3) Photon {
	return Photon{Pos: pos, Dir: mathutil.NormalizeOrZero(dir)}
}

// Step advances the photon by stepSize under the pull of field.
func (p *Photon) Step(field masses.Field, stepSize float32) {
	h2 := stepSize * stepSize
	for _, m := range field {
		rSqr := mathutil.DistSqr(m.Pos, p.Pos)
		if rSqr == 0 {
			// Direction to the mass is undefined.
			continue
		}
		acc := G * m.Mass / rSqr
		toward := mathutil.NormalizeOrZero(m.Pos.Sub(p.Pos))
		p.Dir = p.Dir.Add(toward.Mul(acc * h2))
	}

	p.Dir = mathutil.NormalizeOrZero(p.Dir)
	p.Pos = p.Pos.Add(p.Dir.Mul(stepSize))
}

// Limits bounds a trace.
type Limits struct {
	StepSize float32
	MaxSteps int
}

// Result is the outcome of a trace. Hit is false when the step budget ran out
// before the photon entered any object; Color is then the zero background.
type Result struct {
	Color objects.Color
	Steps int
	Hit   bool
}

// Trace marches p until it enters a member of set or MaxSteps is reached.
// Hits are tested after each step, so an object enclosing the start point is
// reported on step 1, not step 0.
func Trace(p Photon, field masses.Field, set objects.Set, lim Limits) Result {
	for i := 1; i <= lim.MaxSteps; i++ {
		p.Step(field, lim.StepSize)
		if c, ok := set.Test(p.Pos); ok {
			return Result{Color: c, Steps: i, Hit: true}
		}
	}
	return Result{Steps: lim.MaxSteps}
}
