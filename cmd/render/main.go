package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	_ "gocloud.dev/blob/gcsblob"

	"lensing-renderer/internal/artifact"
	"lensing-renderer/internal/config"
	"lensing-renderer/internal/render"
	"lensing-renderer/internal/scene"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or YAML config file")
	sceneName := flag.String("scene", "", "Scene preset: "+strings.Join(scene.Names(), ", ")+" (default: wallpaper)")
	output := flag.String("output", "", "Output image; use a %d verb for animations (default: <scene>.png)")
	width := flag.Int("width", 0, "Output width in pixels (default: 1920)")
	height := flag.Int("height", 0, "Output height in pixels (default: 1080)")
	bands := flag.Int("bands", 0, "Number of horizontal bands rendered in parallel (default: 10)")
	workers := flag.Int("workers", 0, "Max bands rendering at once (default: all)")
	frames := flag.Int("frames", 0, "Render an animation of N frames (default: 1)")
	artifacts := flag.String("artifacts", "", "Band artifact location: directory or bucket URL (default: stitch)")
	logLevel := flag.String("log", "", "Log level: debug, info, warn, error (default: info)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	err := cfg.Resolve(config.Flags{
		Scene:       *sceneName,
		Output:      *output,
		Width:       *width,
		Height:      *height,
		Bands:       *bands,
		Workers:     *workers,
		Frames:      *frames,
		ArtifactURL: *artifacts,
		LogLevel:    *logLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	build, err := scene.Lookup(cfg.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	format, err := artifact.ParseFormat(cfg.ArtifactFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	world := render.NewWorld(render.Options{
		StepSize:    cfg.StepSize,
		MaxSteps:    cfg.MaxSteps,
		Falloff:     cfg.Falloff,
		Tonemap:     cfg.Tonemap,
		Workers:     cfg.Workers,
		Supersample: cfg.Supersample,
		Format:      format,
		Artifacts:   cfg.ArtifactURL,
		Keep:        cfg.KeepArtifacts,
		Logger:      logger,
		Progress:    render.LogProgress(logger),
	})

	fmt.Printf("Lensing renderer: scene %s, %dx%d, %d bands, %d frame(s)\n",
		cfg.Scene, cfg.Width, cfg.Height, cfg.Bands, cfg.Frames)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	var entries []ManifestEntry
	for i := 0; i < cfg.Frames; i++ {
		t := float32(i) / float32(cfg.Frames)
		s := build(cfg.Width, cfg.Height, t)
		if cfg.Exposure > 0 {
			s.Camera.Exposure = cfg.Exposure
		}

		for _, m := range s.Masses {
			world.AddMass(m)
		}
		for _, o := range s.Objects {
			world.AddObject(o)
		}
		world.AddCamera(s.Camera)

		path := frameName(cfg.Output, i, cfg.Frames)
		if err := world.Render(ctx, cfg.Bands, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", path, err)
			os.Exit(1)
		}

		world.ClearObjects()
		world.ClearCameras()
		world.ClearMasses()

		entries = append(entries, ManifestEntry{Frame: i, Time: t, Scene: cfg.Scene, Image: path})
		fmt.Printf("Saved %s after %.1fs\n", path, time.Since(start).Seconds())
	}

	if cfg.Frames > 1 {
		manifestPath := filepath.Join(filepath.Dir(entries[0].Image), "manifest.json")
		if err := WriteManifest(manifestPath, entries); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
}

// frameName expands a %d-style verb in pattern for animations. Animations
// without a verb get the frame number appended to the file stem.
func frameName(pattern string, i, frames int) string {
	if frames <= 1 {
		return pattern
	}
	if strings.Contains(pattern, "%") {
		return fmt.Sprintf(pattern, i)
	}
	ext := filepath.Ext(pattern)
	return fmt.Sprintf("%s_%06d%s", strings.TrimSuffix(pattern, ext), i, ext)
}
