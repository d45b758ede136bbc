package render

import (
	"image"
	"image/color"
	"testing"

	"glyphforge.dev/rasterize"
)

func TestPorterDuffOverOpaque(t *testing.T) {
	dst := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	src := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	got := porterDuffOver(dst, src, 255)
	if got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Fatalf("fully opaque src should fully replace dst, got %+v", got)
	}
}

func TestPorterDuffOverTransparentSrcIsNoOp(t *testing.T) {
	dst := color.NRGBA{R: 5, G: 6, B: 7, A: 200}
	got := porterDuffOver(dst, color.NRGBA{R: 255}, 0)
	if got != dst {
		t.Fatalf("zero-alpha src should leave dst unchanged, got %+v want %+v", got, dst)
	}
}

func solidBitmap(w, h int) rasterize.Bitmap {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = 255
	}
	return rasterize.Bitmap{Width: w, Height: h, Pix: pix}
}

func TestBlendGlyphScalarPathPaintsForeground(t *testing.T) {
	canvas := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	bmp := solidBitmap(4, 4)
	fg := color.NRGBA{R: 1, G: 2, B: 3, A: 255}
	scalarBlend(canvas, bmp, 2, 2, fg)
	got := canvas.NRGBAAt(3, 3)
	if got != fg {
		t.Fatalf("expected foreground color painted, got %+v", got)
	}
	if canvas.NRGBAAt(0, 0) != (color.NRGBA{}) {
		t.Fatal("expected untouched pixel to remain transparent")
	}
}

func TestBlendGlyphOptimizedAndScalarPathsAgree(t *testing.T) {
	bmp := solidBitmap(3, 3)
	fg := color.NRGBA{R: 10, G: 20, B: 30, A: 128}

	a := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	blendGlyph(a, bmp, 1, 1, fg, false)

	b := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	blendGlyph(b, bmp, 1, 1, fg, true)

	for i := range a.Pix {
		if diff(a.Pix[i], b.Pix[i]) > 1 {
			t.Fatalf("optimized and scalar paths disagree at byte %d: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func diff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
