package rasterize

import (
	"testing"

	"glyphforge.dev/fixedmath"
)

func arg(x, y float64) fixedmath.Point26_6 {
	return fixedmath.Point26_6{X: fixedmath.FromFloat(x), Y: fixedmath.FromFloat(y)}
}

func squareOutline(unitsPerEm int, x0, y0, x1, y1 float64) Outline {
	return Outline{
		UnitsPerEm: unitsPerEm,
		Segments: []Segment{
			{Op: SegmentMoveTo, Args: [3]fixedmath.Point26_6{arg(x0, y0)}},
			{Op: SegmentLineTo, Args: [3]fixedmath.Point26_6{arg(x1, y0)}},
			{Op: SegmentLineTo, Args: [3]fixedmath.Point26_6{arg(x1, y1)}},
			{Op: SegmentLineTo, Args: [3]fixedmath.Point26_6{arg(x0, y1)}},
		},
	}
}

func TestRasterizeOutlineProducesFilledSquare(t *testing.T) {
	outline := squareOutline(1000, 100, 100, 900, 900)
	bmp, err := RasterizeOutline(outline, 100, NonZero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bmp.Empty() {
		t.Fatal("expected non-empty bitmap")
	}
	// Roughly 80x80 px square at ppem=100, unitsPerEm=1000.
	if bmp.Width < 70 || bmp.Width > 90 {
		t.Fatalf("unexpected bitmap width: %d", bmp.Width)
	}
	cx, cy := bmp.Width/2, bmp.Height/2
	if bmp.Pix[cy*bmp.Width+cx] == 0 {
		t.Fatal("expected center pixel to have coverage")
	}
}

func TestRasterizeOutlineEmptyOutline(t *testing.T) {
	bmp, err := RasterizeOutline(Outline{UnitsPerEm: 1000}, 16, NonZero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bmp.Empty() {
		t.Fatal("expected empty bitmap for a glyph with no segments")
	}
}

func TestRasterizeOutlineRejectsOversizedBitmap(t *testing.T) {
	outline := squareOutline(1, 0, 0, 1, 1) // unitsPerEm=1 means a huge scale factor
	_, err := RasterizeOutline(outline, 10000, NonZero)
	if err == nil {
		t.Fatal("expected an error for an oversized bounding box")
	}
}
