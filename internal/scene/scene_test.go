package scene

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		b, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		s := b(64, 36, 0.25)
		if s.Camera.Screen.ResWidth != 64 || s.Camera.Screen.ResHeight != 36 {
			t.Errorf("%s: expected 64x36 camera, got %dx%d", name, s.Camera.Screen.ResWidth, s.Camera.Screen.ResHeight)
		}
		if len(s.Objects) == 0 {
			t.Errorf("%s: expected at least one object", name)
		}
		xb, yb := s.Camera.Basis()
		if xb.Len() == 0 || yb.Len() == 0 {
			t.Errorf("%s: expected a defined camera basis", name)
		}
	}
	if _, err := Lookup("nope"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestNamesSorted(t *testing.T) {
	if diff := cmp.Diff([]string{"blobs", "orbit", "wallpaper"}, Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestWallpaperAspect(t *testing.T) {
	s := Wallpaper(1920, 1080, 0)
	want := float32(15 * 1920.0 / 1080.0)
	if d := s.Camera.Screen.Width - want; d > 1e-3 || d < -1e-3 {
		t.Errorf("Expected screen width %f, got %f", want, s.Camera.Screen.Width)
	}
	if s.Camera.Exposure != 0.55 {
		t.Errorf("Expected exposure 0.55, got %f", s.Camera.Exposure)
	}
}

func TestOrbitMovesCamera(t *testing.T) {
	a := Orbit(32, 32, 0).Camera.Pos
	b := Orbit(32, 32, 0.1).Camera.Pos
	if a == b {
		t.Error("Expected camera to move between frames")
	}
	// Above the disk early on, below it late.
	if Orbit(32, 32, 0.05).Camera.Pos[2] <= 0 || Orbit(32, 32, 0.95).Camera.Pos[2] >= 0 {
		t.Error("Expected camera to swing from above to below the disk plane")
	}
}
