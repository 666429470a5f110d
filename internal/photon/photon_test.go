package photon

import (
	"math"
	"testing"

	"lensing-renderer/internal/masses"
	"lensing-renderer/internal/mathutil"
	"lensing-renderer/internal/objects"
)

// countingSet records how many points it was asked about.
type countingSet struct {
	calls int
}

func (c *countingSet) Overlap(mathutil.Vec3) (objects.Color, bool) {
	c.calls++
	return objects.Color{}, false
}

func near(a, b mathutil.Vec3, tol float32) bool {
	d := a.Sub(b)
	return d.Len() <= tol
}

func TestNewNormalizesDirection(t *testing.T) {
	p := New(mathutil.V3(0, 0, 0), mathutil.V3(0, 3, 4))
	if math.Abs(float64(p.Dir.Len())-1) > 1e-6 {
		t.Errorf("Expected unit direction, got length %f", p.Dir.Len())
	}
}

func TestStraightLineWithoutMasses(t *testing.T) {
	origin := mathutil.V3(1, -2, 0.5)
	dir := mathutil.NormalizeOrZero(mathutil.V3(1, 2, -1))
	step := float32(0.05)

	p := New(origin, dir)
	for k := 1; k <= 200; k++ {
		p.Step(nil, step)
		want := origin.Add(dir.Mul(float32(k) * step))
		if !near(p.Pos, want, 5e-4) {
			t.Fatalf("Step %d: expected %v, got %v", k, want, p.Pos)
		}
	}
}

func TestStepBendsTowardMass(t *testing.T) {
	field := masses.Field{{Pos: mathutil.V3(0, 1, 0), Mass: 1}}
	p := New(mathutil.V3(-5, 0, 0), mathutil.V3(1, 0, 0))

	for i := 0; i < 100; i++ {
		p.Step(field, 0.05)
	}

	if p.Dir[1] <= 0 {
		t.Errorf("Expected direction to gain +y toward the mass, got %v", p.Dir)
	}
	if math.Abs(float64(p.Dir.Len())-1) > 1e-5 {
		t.Errorf("Expected direction renormalized to unit length, got %f", p.Dir.Len())
	}
}

func TestStepCancelingForcesStall(t *testing.T) {
	// A stationary photon midway between two equal masses feels no net pull.
	field := masses.Field{
		{Pos: mathutil.V3(1, 0, 0), Mass: 1},
		{Pos: mathutil.V3(-1, 0, 0), Mass: 1},
	}
	p := Photon{Pos: mathutil.V3(0, 0, 0)}

	p.Step(field, 0.1)

	if p.Dir != (mathutil.Vec3{}) {
		t.Errorf("Expected zero direction from canceling forces, got %v", p.Dir)
	}
	if p.Pos != (mathutil.Vec3{}) {
		t.Errorf("Expected photon to stall, got %v", p.Pos)
	}
	for _, v := range p.Pos {
		if math.IsNaN(float64(v)) {
			t.Fatal("Expected no NaN in position")
		}
	}
}

func TestStepIgnoresCoincidentMass(t *testing.T) {
	field := masses.Field{{Pos: mathutil.V3(0, 0, 0), Mass: 5}}
	p := New(mathutil.V3(0, 0, 0), mathutil.V3(0, 0, 1))

	p.Step(field, 0.5)

	want := mathutil.V3(0, 0, 0.5)
	if !near(p.Pos, want, 1e-6) {
		t.Errorf("Expected %v, got %v", want, p.Pos)
	}
}

func TestTraceExhaustsAfterMaxSteps(t *testing.T) {
	probe := &countingSet{}
	res := Trace(New(mathutil.V3(0, 0, 0), mathutil.V3(1, 0, 0)), nil, objects.Set{probe}, Limits{StepSize: 0.1, MaxSteps: 37})

	if res.Hit {
		t.Error("Expected no hit")
	}
	if res.Steps != 37 {
		t.Errorf("Expected 37 steps, got %d", res.Steps)
	}
	if probe.calls != 37 {
		t.Errorf("Expected 37 visibility tests, got %d", probe.calls)
	}
	if res.Color != (objects.Color{}) {
		t.Errorf("Expected background color, got %v", res.Color)
	}
}

func TestTraceHitsEnclosingObjectOnFirstStep(t *testing.T) {
	col := objects.Color{0.2, 0.4, 0.6}
	set := objects.Set{objects.Sphere{Pos: mathutil.V3(0, 0, 0), Rad: 10, Col: col}}

	res := Trace(New(mathutil.V3(0, 0, 0), mathutil.V3(0, 1, 0)), nil, set, Limits{StepSize: 0.1, MaxSteps: 100})

	if !res.Hit || res.Color != col {
		t.Errorf("Expected hit with %v, got %+v", col, res)
	}
	if res.Steps != 1 {
		t.Errorf("Expected hit after the first step, got %d", res.Steps)
	}
}

func TestTraceReachesSphere(t *testing.T) {
	set := objects.Set{objects.Sphere{Pos: mathutil.V3(5, 0, 0), Rad: 1, Col: objects.Color{1, 1, 1}}}

	res := Trace(New(mathutil.V3(0, 0, 0), mathutil.V3(1, 0, 0)), nil, set, Limits{StepSize: 0.1, MaxSteps: 100})

	if !res.Hit {
		t.Fatal("Expected hit")
	}
	// Surface at x=4 is reached on step 40 (give or take rounding).
	if res.Steps < 40 || res.Steps > 41 {
		t.Errorf("Expected about 40 steps, got %d", res.Steps)
	}
}

func TestTraceZeroBudget(t *testing.T) {
	set := objects.Set{objects.Sphere{Pos: mathutil.V3(0, 0, 0), Rad: 10}}
	res := Trace(New(mathutil.V3(0, 0, 0), mathutil.V3(1, 0, 0)), nil, set, Limits{StepSize: 0.1})
	if res.Hit || res.Steps != 0 {
		t.Errorf("Expected no steps and no hit, got %+v", res)
	}
}
