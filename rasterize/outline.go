// Package rasterize converts font outlines into coverage bitmaps. It
// generalizes the edge-table scan converter gioui-gio's raster.go delegates
// to golang.org/x/image/vector, reimplementing the walk explicitly so both
// the non-zero and even-odd fill rules are available (x/image/vector only
// ever applies non-zero winding).
package rasterize

import (
	"github.com/go-text/typesetting/opentype/api"

	"glyphforge.dev/fixedmath"
)

// SegmentOp names a path-building instruction, mirroring
// api.SegmentOp so callers never need to import the opentype/api package
// themselves.
type SegmentOp uint8

const (
	SegmentMoveTo SegmentOp = iota
	SegmentLineTo
	SegmentQuadTo
	SegmentCubeTo
)

// Segment is one instruction of a glyph outline, in font units (not yet
// scaled to pixels).
type Segment struct {
	Op   SegmentOp
	Args [3]fixedmath.Point26_6
}

// Outline is a glyph's vector outline as a flat sequence of path
// instructions, in font design units.
type Outline struct {
	Segments []Segment
	UnitsPerEm int
}

// Face is the subset of a parsed font face needed to extract outlines,
// satisfied by github.com/go-text/typesetting/font.Face.
type Face interface {
	GlyphData(gid api.GID) api.GlyphData
	Upem() uint16
}

// ExtractOutline fetches gid's vector outline from face, converting
// go-text/typesetting's float32 segment arguments into this package's
// fixed-point representation. It reports false if the glyph's data is not
// a vector outline (e.g. it is bitmap-only); a glyph with an empty outline
// is returned with ok true and no segments.
func ExtractOutline(face Face, gid api.GID) (Outline, bool) {
	data := face.GlyphData(gid)
	outline, ok := data.(api.GlyphOutline)
	if !ok {
		return Outline{}, false
	}
	segs := make([]Segment, len(outline.Segments))
	for i, s := range outline.Segments {
		seg := Segment{Op: mapOp(s.Op)}
		n := argCount(seg.Op)
		for j := 0; j < n; j++ {
			seg.Args[j] = fixedmath.Point26_6{
				X: fixedmath.FromFloat(float64(s.Args[j].X)),
				Y: fixedmath.FromFloat(float64(s.Args[j].Y)),
			}
		}
		segs[i] = seg
	}
	return Outline{Segments: segs, UnitsPerEm: int(face.Upem())}, true
}

func mapOp(op api.SegmentOp) SegmentOp {
	switch op {
	case api.SegmentOpLineTo:
		return SegmentLineTo
	case api.SegmentOpQuadTo:
		return SegmentQuadTo
	case api.SegmentOpCubeTo:
		return SegmentCubeTo
	default:
		return SegmentMoveTo
	}
}

func argCount(op SegmentOp) int {
	switch op {
	case SegmentLineTo:
		return 1
	case SegmentQuadTo:
		return 2
	case SegmentCubeTo:
		return 3
	default:
		return 1
	}
}

// Bounds walks the outline with a "bounds calculator" pen (spec.md §4.3 step
// 2) to discover its pixel-space bounding box after applying scale. An
// outline with no segments yields an empty (zero) rectangle.
func (o Outline) Bounds(scale float64) fixedmath.Rectangle26_6 {
	var bounds fixedmath.Rectangle26_6
	first := true
	var pen fixedmath.Point26_6
	visit := func(p fixedmath.Point26_6) {
		scaled := fixedmath.Point26_6{
			X: fixedmath.FromFloat(fixedmath.ToFloat(p.X) * scale),
			Y: fixedmath.FromFloat(fixedmath.ToFloat(p.Y) * scale),
		}
		if first {
			bounds = fixedmath.Rectangle26_6{Min: scaled, Max: scaled}
			first = false
			return
		}
		if scaled.X < bounds.Min.X {
			bounds.Min.X = scaled.X
		}
		if scaled.Y < bounds.Min.Y {
			bounds.Min.Y = scaled.Y
		}
		if scaled.X > bounds.Max.X {
			bounds.Max.X = scaled.X
		}
		if scaled.Y > bounds.Max.Y {
			bounds.Max.Y = scaled.Y
		}
	}
	for _, seg := range o.Segments {
		switch seg.Op {
		case SegmentMoveTo:
			pen = seg.Args[0]
			visit(pen)
		case SegmentLineTo:
			pen = seg.Args[0]
			visit(pen)
		case SegmentQuadTo:
			visit(seg.Args[0])
			pen = seg.Args[1]
			visit(pen)
		case SegmentCubeTo:
			visit(seg.Args[0])
			visit(seg.Args[1])
			pen = seg.Args[2]
			visit(pen)
		}
	}
	return bounds
}
