package mathutil

import (
	"math"
	"testing"
)

func TestNormalizeOrZero(t *testing.T) {
	n := NormalizeOrZero(V3(3, 0, 4))
	if math.Abs(float64(n.Len())-1) > 1e-6 {
		t.Errorf("Expected unit length, got %f", n.Len())
	}
	if math.Abs(float64(n[0])-0.6) > 1e-6 || math.Abs(float64(n[2])-0.8) > 1e-6 {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", n)
	}
}

func TestNormalizeOrZeroDegenerate(t *testing.T) {
	inf := float32(math.Inf(1))
	for _, v := range []Vec3{{}, V3(inf, 0, 0), V3(1e-38, 0, 0)} {
		n := NormalizeOrZero(v)
		if n != (Vec3{}) {
			t.Errorf("Expected zero vector for %v, got %v", v, n)
		}
	}
}

func TestDistSqr(t *testing.T) {
	if d := DistSqr(V3(1, 2, 3), V3(1, 4, 3)); d != 4 {
		t.Errorf("Expected 4, got %f", d)
	}
}
