// Package scene builds the example scenes shipped with the renderer.
package scene

import (
	"fmt"
	"math"
	"sort"

	"lensing-renderer/internal/camera"
	"lensing-renderer/internal/masses"
	"lensing-renderer/internal/mathutil"
	"lensing-renderer/internal/objects"
)

// Scene is everything a World needs for one frame.
type Scene struct {
	Masses  masses.Field
	Objects objects.Set
	Camera  camera.Ortho
}

// Builder creates a scene for a resolution and an animation time t in [0, 1).
// Still scenes ignore t.
type Builder func(resW, resH int, t float32) Scene

var presets = map[string]Builder{
	"wallpaper": Wallpaper,
	"blobs":     Blobs,
	"orbit":     Orbit,
}

// Lookup returns the named preset.
func Lookup(name string) (Builder, error) {
	b, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q (have %v)", name, Names())
	}
	return b, nil
}

// Names lists the presets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func accretionDisk() objects.Disk {
	return objects.Disk{
		Pos:      mathutil.V3(0, 0, 0),
		InnerRad: 1,
		OuterRad: 8,
		Height:   0.1,
		Col:      objects.Color{1, 0.5, 0.3},
	}
}

func blackHole() masses.StaticMass {
	return masses.StaticMass{Pos: mathutil.V3(0, 0, 0), Mass: 10}
}

// Wallpaper is a slightly raised view across a lensed accretion disk.
func Wallpaper(resW, resH int, _ float32) Scene {
	const height = 15
	return Scene{
		Masses:  masses.Field{blackHole()},
		Objects: objects.Set{accretionDisk()},
		Camera: camera.New(
			mathutil.V3(8, 0, 2),
			mathutil.V3(0, 0, 1),
			height*float32(resW)/float32(resH), height,
			resW, resH,
			0.55,
		),
	}
}

// Blobs shows a sphere and a noise blob bent around a nearby mass.
func Blobs(resW, resH int, _ float32) Scene {
	return Scene{
		Masses: masses.Field{{Pos: mathutil.V3(2, 7, 0), Mass: 1}},
		Objects: objects.Set{
			objects.Sphere{Pos: mathutil.V3(3, 0, 2), Rad: 3, Col: objects.Color{0.8, 0.6, 0.9}},
			objects.Blobs{Pos: mathutil.V3(0, 0, 0), Scale: 4, Size: 1.7, Col: objects.Color{0.9, 0.7, 0.5}},
		},
		Camera: camera.New(
			mathutil.V3(6, 5, 4),
			mathutil.V3(0, 0, 0),
			20, 20*float32(resH)/float32(resW),
			resW, resH,
			1,
		),
	}
}

// Orbit is one frame of a fly-around: the camera circles the disk twice
// while swinging from above the plane to below it.
func Orbit(resW, resH int, t float32) Scene {
	const height = 15
	angle := 4 * math.Pi * float64(t)
	swing := 1/(1+math.Exp(20*(float64(t)-0.5))) - 0.5

	return Scene{
		Masses:  masses.Field{blackHole()},
		Objects: objects.Set{accretionDisk()},
		Camera: camera.New(
			mathutil.V3(float32(8*math.Cos(angle)), float32(8*math.Sin(angle)), float32(3*swing)),
			mathutil.V3(0, 0, 0),
			height*float32(resW)/float32(resH), height,
			resW, resH,
			0.55,
		),
	}
}
