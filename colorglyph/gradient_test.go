package colorglyph

import (
	"image/color"
	"testing"

	"glyphforge.dev/f32"
)

func TestSingleStopGradientDegeneratesToSolid(t *testing.T) {
	b := Brush{Stops: []Stop{{Offset: 0.5, Color: color.NRGBA{R: 1, G: 2, B: 3, A: 255}}}}
	got := b.At(0.9)
	if got != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Fatalf("expected degenerate solid color, got %+v", got)
	}
}

func TestLinearGradientInterpolates(t *testing.T) {
	b := Brush{
		Kind: GradientLinear,
		Stops: []Stop{
			{Offset: 0, Color: color.NRGBA{R: 0, A: 255}},
			{Offset: 1, Color: color.NRGBA{R: 255, A: 255}},
		},
		P0: f32.Point{X: 0, Y: 0},
		P1: f32.Point{X: 10, Y: 0},
	}
	mid := b.SampleAt(f32.Point{X: 5, Y: 0})
	if mid.R < 100 || mid.R > 155 {
		t.Fatalf("expected midpoint red around 127, got %d", mid.R)
	}
}

func TestExtendModePad(t *testing.T) {
	b := Brush{
		Stops: []Stop{
			{Offset: 0, Color: color.NRGBA{R: 0, A: 255}},
			{Offset: 1, Color: color.NRGBA{R: 255, A: 255}},
		},
		Extend: ExtendPad,
	}
	if got := b.At(-0.5); got.R != 0 {
		t.Fatalf("pad should clamp to first stop, got %+v", got)
	}
	if got := b.At(1.5); got.R != 255 {
		t.Fatalf("pad should clamp to last stop, got %+v", got)
	}
}

func TestExtendModeRepeatAndReflect(t *testing.T) {
	repeat := applyExtend(1.25, ExtendRepeat)
	if repeat < 0.24 || repeat > 0.26 {
		t.Fatalf("repeat(1.25) should wrap to ~0.25, got %v", repeat)
	}
	reflect := applyExtend(1.25, ExtendReflect)
	if reflect < 0.74 || reflect > 0.76 {
		t.Fatalf("reflect(1.25) should mirror to ~0.75, got %v", reflect)
	}
}

func TestMedianStopFallback(t *testing.T) {
	b := Brush{Stops: []Stop{
		{Offset: 0, Color: color.NRGBA{R: 1, A: 255}},
		{Offset: 0.5, Color: color.NRGBA{R: 2, A: 255}},
		{Offset: 1, Color: color.NRGBA{R: 3, A: 255}},
	}}
	if got := b.MedianStop(); got.R != 2 {
		t.Fatalf("expected median stop color, got %+v", got)
	}
}
