// Package render drives photon traces over a camera's pixels, renders image
// bands concurrently and stitches them back into a single frame.
package render

import (
	"errors"
	"fmt"
	"log/slog"

	"gocloud.dev/blob"

	"lensing-renderer/internal/artifact"
	"lensing-renderer/internal/camera"
	"lensing-renderer/internal/masses"
	"lensing-renderer/internal/objects"
	"lensing-renderer/internal/photon"
	"lensing-renderer/internal/raster"
)

var (
	// ErrNoCamera is returned when rendering a world without cameras.
	ErrNoCamera = errors.New("render: no camera")
	// ErrCameraIndex is returned when splitting a camera that does not exist.
	ErrCameraIndex = errors.New("render: camera index out of range")
	// ErrUnsplitCamera is returned by RenderBand for a camera without a band index.
	ErrUnsplitCamera = errors.New("render: camera has no band index")
)

// Options controls how a World renders.
type Options struct {
	StepSize float32
	MaxSteps int
	// Falloff and Tonemap configure shading; exposure comes from each camera.
	Falloff float32
	Tonemap bool

	// Workers caps the number of bands rendering at once. Zero runs every
	// band concurrently.
	Workers int
	// Supersample renders at Supersample times the camera resolution and
	// downsamples the stitched frame.
	Supersample int

	// Format encodes band artifacts.
	Format artifact.Format
	// Artifacts is the artifact bucket location, see artifact.OpenBucket.
	Artifacts string
	// Bucket, if set, is used instead of opening Artifacts. It is not closed.
	Bucket *blob.Bucket
	// Keep leaves band artifacts in place after stitching.
	Keep bool

	Logger   *slog.Logger
	Progress Progress
}

// DefaultOptions returns settings suited to the example scenes.
func DefaultOptions() Options {
	return Options{
		StepSize:    0.02,
		MaxSteps:    2000,
		Supersample: 1,
		Format:      artifact.PNG,
		Artifacts:   artifact.DefaultLocation,
	}
}

// World holds the scene: masses, visible objects and cameras.
// It must not be edited while Render runs.
type World struct {
	cameras []camera.Ortho
	objects objects.Set
	masses  masses.Field
	opts    Options
}

// NewWorld creates an empty world.
func NewWorld(opts Options) *World {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Progress == nil {
		opts.Progress = NopProgress
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	return &World{opts: opts}
}

func (w *World) AddCamera(c camera.Ortho)    { w.cameras = append(w.cameras, c) }
func (w *World) ClearCameras()               { w.cameras = nil }
func (w *World) AddObject(o objects.Visible) { w.objects = append(w.objects, o) }
func (w *World) ClearObjects()               { w.objects = nil }
func (w *World) AddMass(m masses.StaticMass) { w.masses = append(w.masses, m) }
func (w *World) ClearMasses()                { w.masses = nil }

// Cameras returns a copy of the camera list.
func (w *World) Cameras() []camera.Ortho {
	return append([]camera.Ortho(nil), w.cameras...)
}

// SplitCamera replaces camera index with its n bands, appended at the end of
// the camera list.
func (w *World) SplitCamera(index, n int) error {
	if index < 0 || index >= len(w.cameras) {
		return fmt.Errorf("%w: %d of %d", ErrCameraIndex, index, len(w.cameras))
	}
	bands, err := w.cameras[index].Split(n)
	if err != nil {
		return err
	}
	w.replaceCamera(index, bands)
	return nil
}

// replaceCamera removes camera index and appends bands after the rest.
func (w *World) replaceCamera(index int, bands []camera.Ortho) {
	rest := append(w.cameras[:index:index], w.cameras[index+1:]...)
	w.cameras = append(rest, bands...)
}

// env snapshots the scene for one render pass.
func (w *World) env() Env {
	return Env{
		Masses:  w.masses.Clone(),
		Objects: w.objects.Clone(),
		Limits:  photon.Limits{StepSize: w.opts.StepSize, MaxSteps: w.opts.MaxSteps},
		Shading: raster.Shading{Falloff: w.opts.Falloff, Tonemap: w.opts.Tonemap},
	}
}
