package raster

import (
	"image/color"
	"math"

	"lensing-renderer/internal/photon"
)

// Shading converts trace results to 8-bit color.
type Shading struct {
	// Exposure scales linear color before quantization. Zero means 1.
	Exposure float32
	// Falloff, when positive, multiplies hit color by Falloff^steps as a
	// depth cue: photons that travel further come back darker.
	Falloff float32
	// Tonemap applies ACES filmic compression after exposure.
	Tonemap bool
}

// Background is the color of photons that never hit anything.
var Background = color.NRGBA{A: 255}

// Shade returns the pixel color for res.
func (s Shading) Shade(res photon.Result) color.NRGBA {
	if !res.Hit {
		return Background
	}

	k := float64(s.Exposure)
	if k == 0 {
		k = 1
	}
	if s.Falloff > 0 {
		k *= math.Pow(float64(s.Falloff), float64(res.Steps))
	}

	var out [3]uint8
	for i, v := range res.Color {
		x := float64(v) * k
		if s.Tonemap {
			x = ACESTonemap(x)
		}
		out[i] = clamp8(x * 255)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: 255}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp8(v float64) uint8 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
