package rasterize

import (
	"github.com/go-text/typesetting/opentype/api"

	"glyphforge.dev/errs"
	"glyphforge.dev/fixedmath"
)

const (
	// maxBitmapDimension is the hard cap spec.md §4.3 step 3 imposes to
	// contain memory-bomb fonts whose outlines claim an enormous bounding
	// box.
	maxBitmapDimension = 4096
	// defaultOversample is the supersampling factor used for grayscale
	// antialiasing (spec.md §4.2 "typically 4x").
	defaultOversample = 4
)

// Bitmap is a rasterized glyph: a grayscale coverage grid plus the offsets
// needed to place it relative to a pen position (spec.md §3 "Glyph
// bitmap").
type Bitmap struct {
	Width, Height int
	// Left and Top are the offsets from the pen position to the bitmap's
	// top-left corner in Y-down pixel space, so Top is negative for ink above
	// the baseline; Top records the baseline offset (spec.md §4.3 step 6).
	Left, Top int
	Pix       []byte // one coverage byte per pixel, row-major
}

// Empty reports whether the bitmap has no pixels (a whitespace glyph).
func (b Bitmap) Empty() bool { return b.Width == 0 || b.Height == 0 }

// RasterizeOutline renders outline (already in font design units) at the
// given pixels-per-em, producing a grayscale coverage Bitmap. It performs
// the full spec.md §4.3 sequence: bounds discovery, size-cap rejection,
// scan conversion at oversample resolution, and downsampling.
func RasterizeOutline(outline Outline, ppem float64, fillRule FillRule) (Bitmap, error) {
	if outline.UnitsPerEm <= 0 {
		return Bitmap{}, errs.New(errs.RenderFailure, "outline has no units-per-em")
	}
	scale := ppem / float64(outline.UnitsPerEm)

	bounds := outline.Bounds(scale)
	if bounds.Min == bounds.Max {
		return Bitmap{}, nil
	}
	width := fixedmath.RoundCeil(bounds.Max.X) - fixedmath.RoundFloor(bounds.Min.X)
	height := fixedmath.RoundCeil(bounds.Max.Y) - fixedmath.RoundFloor(bounds.Min.Y)
	if width <= 0 || height <= 0 {
		return Bitmap{}, nil
	}
	if width > maxBitmapDimension || height > maxBitmapDimension {
		return Bitmap{}, errs.New(errs.RenderFailure, "glyph bounding box exceeds the maximum bitmap size")
	}

	oversample := defaultOversample
	sc := NewScanConverter(width*oversample, height*oversample, fillRule)

	// The "transform pen": scale by scale*oversample, translate the glyph's
	// origin to column 0, and flip Y since font outlines are Y-up while
	// bitmaps are Y-down.
	originX := fixedmath.ToFloat(bounds.Min.X)
	originY := fixedmath.ToFloat(bounds.Max.Y) // top of the glyph in font space, Y-up

	transform := func(p fixedmath.Point26_6) fixedmath.Point26_6 {
		x := (fixedmath.ToFloat(p.X)*scale - originX) * float64(oversample)
		y := (originY - fixedmath.ToFloat(p.Y)*scale) * float64(oversample)
		return fixedmath.Point26_6{X: fixedmath.FromFloat(x), Y: fixedmath.FromFloat(y)}
	}

	walkOutline(outline, transform, sc)

	cov := sc.Coverage()
	down, outW, outH := Downsample(cov, width*oversample, height*oversample, oversample)

	return Bitmap{
		Width:  outW,
		Height: outH,
		Left:   fixedmath.RoundFloor(bounds.Min.X),
		Top:    -fixedmath.RoundCeil(bounds.Max.Y),
		Pix:    down,
	}, nil
}

// walkOutline replays outline's segments through transform, flattening
// curves via the fixedmath package, and feeds the resulting polyline into
// the scan converter.
func walkOutline(outline Outline, transform func(fixedmath.Point26_6) fixedmath.Point26_6, sc *ScanConverter) {
	var pen fixedmath.Point26_6
	emit := func(p fixedmath.Point26_6) { sc.Line(transform(p)) }
	for _, seg := range outline.Segments {
		switch seg.Op {
		case SegmentMoveTo:
			pen = seg.Args[0]
			sc.Move(transform(pen))
		case SegmentLineTo:
			pen = seg.Args[0]
			emit(pen)
		case SegmentQuadTo:
			p0, p1, p2 := pen, seg.Args[0], seg.Args[1]
			fixedmath.FlattenQuad(p0, p1, p2, emit)
			pen = p2
		case SegmentCubeTo:
			p0, p1, p2, p3 := pen, seg.Args[0], seg.Args[1], seg.Args[2]
			fixedmath.FlattenCubic(p0, p1, p2, p3, emit)
			pen = p3
		}
	}
	sc.Close()
}

// GID re-exports the opentype/api glyph id type so callers of this package
// never need to import opentype/api directly for glyph identifiers.
type GID = api.GID
