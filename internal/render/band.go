package render

import (
	"context"
	"image"

	"lensing-renderer/internal/artifact"
	"lensing-renderer/internal/camera"
	"lensing-renderer/internal/masses"
	"lensing-renderer/internal/objects"
	"lensing-renderer/internal/photon"
	"lensing-renderer/internal/raster"
)

// Env is the read-only environment shared by every band of a render.
type Env struct {
	Masses  masses.Field
	Objects objects.Set
	Limits  photon.Limits
	Shading raster.Shading
}

// Trace returns the color of one pixel.
func (e Env) Trace(cam camera.Ortho, x, y int) photon.Result {
	return photon.Trace(cam.PixelToPhoton(x, y), e.Masses, e.Objects, e.Limits)
}

// RenderImage traces every pixel of cam into a private buffer. onRow, if not
// nil, is called after each completed row with the number of rows done.
// The context is checked between rows.
func (e Env) RenderImage(ctx context.Context, cam camera.Ortho, onRow func(done int)) (*image.NRGBA, error) {
	shading := e.Shading
	shading.Exposure = cam.Exposure

	buf := raster.NewBuffer(cam.Screen.ResWidth, cam.Screen.ResHeight)
	for x, y := range cam.Screen.Pixels() {
		if x == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		buf.Set(x, y, shading.Shade(e.Trace(cam, x, y)))
		if x == cam.Screen.ResWidth-1 && onRow != nil {
			onRow(y + 1)
		}
	}
	return buf.Image(), nil
}

// RenderBand renders a band camera and persists the result as the artifact
// of its band index.
func RenderBand(ctx context.Context, env Env, cam camera.Ortho, store *artifact.Store, progress Progress) (artifact.Artifact, error) {
	band, ok := cam.BandIndex()
	if !ok {
		return artifact.Artifact{}, ErrUnsplitCamera
	}
	if progress == nil {
		progress = NopProgress
	}

	st := &stepper{band: band, total: cam.Screen.ResHeight, sink: progress}
	img, err := env.RenderImage(ctx, cam, st.rowDone)
	if err != nil {
		return artifact.Artifact{}, err
	}
	return store.Put(ctx, band, img)
}
