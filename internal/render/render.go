package render

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lensing-renderer/internal/artifact"
	"lensing-renderer/internal/camera"
	"lensing-renderer/internal/postprocess"
)

// Render splits the first camera into bands, renders them concurrently and
// stitches the bands into outputPath. The output format follows the file
// extension. It blocks until the image is saved; any failure aborts the whole
// frame and no output file is written.
//
// As with SplitCamera, the first camera is replaced by its bands.
func (w *World) Render(ctx context.Context, bands int, outputPath string) error {
	start := time.Now()
	log := w.opts.Logger

	if len(w.cameras) == 0 {
		return errors.Wrap(ErrNoCamera, "split")
	}
	outFormat, err := artifact.FormatFor(outputPath)
	if err != nil {
		return errors.Wrap(err, "save")
	}

	top := w.cameras[0]
	width, height := top.Screen.ResWidth, top.Screen.ResHeight
	if ss := w.opts.Supersample; ss > 1 {
		top.Screen.ResWidth *= ss
		top.Screen.ResHeight *= ss
	}

	cams, err := top.Split(bands)
	if err != nil {
		return errors.Wrap(err, "split")
	}

	var store *artifact.Store
	if w.opts.Bucket != nil {
		store = artifact.NewStore(w.opts.Bucket, w.opts.Format)
	} else {
		store, err = artifact.OpenStore(ctx, w.opts.Artifacts, w.opts.Format)
		if err != nil {
			return errors.Wrap(err, "split")
		}
		defer store.Close()
	}

	// Configuration errors above leave the camera list untouched.
	w.replaceCamera(0, cams)
	log.Info("split camera", "bands", len(cams), "width", top.Screen.ResWidth, "height", top.Screen.ResHeight)

	if !w.opts.Keep {
		defer func() {
			if err := store.Purge(context.WithoutCancel(ctx)); err != nil {
				log.Warn("purge artifacts", "run", store.Run(), "err", err)
			}
		}()
	}

	if err := w.renderBands(ctx, w.env(), cams, store); err != nil {
		return err
	}
	log.Info("bands rendered", "run", store.Run(), "elapsed", time.Since(start))

	img, err := stitch(ctx, store, len(cams), top.Screen.ResWidth, top.Screen.ResHeight)
	if err != nil {
		return errors.Wrap(err, "stitch")
	}
	if w.opts.Supersample > 1 {
		img = postprocess.Downsample(img, width, height)
	}

	if err := save(outputPath, outFormat, img); err != nil {
		return errors.Wrap(err, "save")
	}
	log.Info("stitched and saved", "file", outputPath, "elapsed", time.Since(start))
	return nil
}

// renderBands runs one goroutine per band and waits for all of them. The
// first failure cancels the others.
func (w *World) renderBands(ctx context.Context, env Env, cams []camera.Ortho, store *artifact.Store) error {
	g, gctx := errgroup.WithContext(ctx)
	if w.opts.Workers > 0 {
		g.SetLimit(w.opts.Workers)
	}
	for _, cam := range cams {
		band, _ := cam.BandIndex()
		g.Go(func() error {
			_, err := RenderBand(gctx, env, cam, store, w.opts.Progress)
			return errors.Wrapf(err, "band %d", band)
		})
	}
	return g.Wait()
}

// stitch reassembles the run's artifacts in band order. Every band 0..n-1
// must be present exactly once and the result must be w×h.
func stitch(ctx context.Context, store *artifact.Store, n, w, h int) (*image.NRGBA, error) {
	arts, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(arts) != n {
		return nil, errors.Errorf("expected %d artifacts, found %d", n, len(arts))
	}

	imgs := make([]*image.NRGBA, 0, n)
	for i, a := range arts {
		if a.Band != i {
			return nil, errors.Errorf("missing band %d (found %s)", i, a.Key)
		}
		img, err := store.Get(ctx, a)
		if err != nil {
			return nil, err
		}
		if img.Bounds().Dx() != w {
			return nil, errors.Errorf("band %d is %d pixels wide, expected %d", i, img.Bounds().Dx(), w)
		}
		imgs = append(imgs, img)
	}

	out := postprocess.Stack(imgs, w)
	if out.Bounds().Dy() != h {
		return nil, errors.Errorf("bands stack to %d rows, expected %d", out.Bounds().Dy(), h)
	}
	return out, nil
}

// save writes img atomically: it is encoded to a temporary file next to path
// and renamed into place only once complete.
func save(path string, f artifact.Format, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".render-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := f.Encode(tmp, img); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
