package raster

import (
	"image/color"
	"testing"

	"lensing-renderer/internal/objects"
	"lensing-renderer/internal/photon"
)

func TestShadeBackground(t *testing.T) {
	got := Shading{Exposure: 3}.Shade(photon.Result{Steps: 10})
	if got != Background {
		t.Errorf("Expected background %v, got %v", Background, got)
	}
}

func TestShadeExposureAndClamp(t *testing.T) {
	res := photon.Result{Hit: true, Steps: 5, Color: objects.Color{1, 0.5, 4}}

	got := Shading{}.Shade(res)
	want := color.NRGBA{R: 255, G: 128, B: 255, A: 255}
	if got != want {
		t.Errorf("Expected %v with unit exposure, got %v", want, got)
	}

	got = Shading{Exposure: 0.5}.Shade(res)
	want = color.NRGBA{R: 128, G: 64, B: 255, A: 255}
	if got != want {
		t.Errorf("Expected %v with half exposure, got %v", want, got)
	}
}

func TestShadeNegativeClampsToZero(t *testing.T) {
	res := photon.Result{Hit: true, Color: objects.Color{-1, 0, 0}}
	if got := (Shading{}).Shade(res); got.R != 0 {
		t.Errorf("Expected negative channel clamped to 0, got %d", got.R)
	}
}

func TestShadeFalloff(t *testing.T) {
	s := Shading{Falloff: 0.5}
	near := s.Shade(photon.Result{Hit: true, Steps: 1, Color: objects.Color{1, 1, 1}})
	far := s.Shade(photon.Result{Hit: true, Steps: 3, Color: objects.Color{1, 1, 1}})

	if near.R != 128 {
		t.Errorf("Expected 128 after one step, got %d", near.R)
	}
	if far.R != 32 {
		t.Errorf("Expected 32 after three steps, got %d", far.R)
	}
}

func TestBufferRoundTrip(t *testing.T) {
	b := NewBuffer(3, 2)
	c := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	b.Set(2, 1, c)

	if got := b.At(2, 1); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	img := b.Image()
	if got := img.NRGBAAt(2, 1); got != c {
		t.Errorf("Expected image pixel %v, got %v", c, got)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Errorf("Expected untouched pixel to stay zero, got %v", got)
	}
}

func TestShadeTonemap(t *testing.T) {
	res := photon.Result{Hit: true, Steps: 5, Color: objects.Color{1, 0, 4}}

	got := Shading{Tonemap: true}.Shade(res)
	want := color.NRGBA{R: 205, G: 0, B: 248, A: 255}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// Without tonemapping the bright channel saturates.
	if plain := (Shading{}).Shade(res); plain.B != 255 {
		t.Errorf("Expected untonemapped blue to clamp to 255, got %d", plain.B)
	}
}
