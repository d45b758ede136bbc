package colorglyph

import (
	"image/color"
	"testing"
)

func TestCompositeClear(t *testing.T) {
	got := BlendClear.Composite(color.NRGBA{R: 10, G: 20, B: 30, A: 255}, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	if got != (color.NRGBA{}) {
		t.Fatalf("expected transparent black, got %+v", got)
	}
}

func TestCompositeSrcOverOpaqueSrc(t *testing.T) {
	dst := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	src := color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	got := BlendSrcOver.Composite(dst, src)
	if got.R != 255 || got.A != 255 {
		t.Fatalf("opaque src-over should fully replace dst, got %+v", got)
	}
}

func TestCompositeMultiplyBlack(t *testing.T) {
	dst := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	src := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	got := BlendMultiply.Composite(dst, src)
	if got.R != 0 {
		t.Fatalf("multiply by black should yield black, got %+v", got)
	}
}

func TestCompositeScreenWhite(t *testing.T) {
	dst := color.NRGBA{R: 100, G: 50, B: 10, A: 255}
	src := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	got := BlendScreen.Composite(dst, src)
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Fatalf("screen with white src should yield white, got %+v", got)
	}
}

func TestUnknownBlendModeDefaultsToSrcOver(t *testing.T) {
	dst := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	src := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	unknown := BlendMode(999)
	got := unknown.Composite(dst, src)
	want := BlendSrcOver.Composite(dst, src)
	if got != want {
		t.Fatalf("unknown blend mode should default to src-over: got %+v want %+v", got, want)
	}
}

func TestHSLLuminosityPreservesHue(t *testing.T) {
	dst := color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	src := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	got := BlendHSLLuminosity.Composite(dst, src)
	if got.R <= got.G || got.R <= got.B {
		t.Fatalf("luminosity blend should keep dst's red-dominant hue, got %+v", got)
	}
}
