package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
)

func TestFrameName(t *testing.T) {
	tests := []struct {
		pattern string
		i       int
		frames  int
		want    string
	}{
		{"wallpaper.png", 0, 1, "wallpaper.png"},
		{"out/frame_%06d.png", 7, 210, "out/frame_000007.png"},
		{"orbit.webp", 12, 30, "orbit_000012.webp"},
		{"orbit", 3, 5, "orbit_000003"},
	}
	for _, tt := range tests {
		if got := frameName(tt.pattern, tt.i, tt.frames); got != tt.want {
			t.Errorf("frameName(%q, %d, %d): expected %q, got %q", tt.pattern, tt.i, tt.frames, tt.want, got)
		}
	}
}

func TestWriteManifest(t *testing.T) {
	p := filepath.Join(t.TempDir(), "manifest.json")
	entries := []ManifestEntry{
		{Frame: 0, Time: 0, Scene: "orbit", Image: "out/frame_000000.png"},
		{Frame: 1, Time: 0.5, Scene: "orbit", Image: "out/frame_000001.png"},
	}
	if err := WriteManifest(p, entries); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	var got []ManifestEntry
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("Manifest mismatch (-want +got):\n%s", diff)
	}
}
