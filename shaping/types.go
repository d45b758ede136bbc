// Package shaping converts text runs into positioned glyph sequences. It
// generalizes gioui-gio's text/gotext.go and text/shaper.go — which shape
// text for an interactive UI's line-wrapping needs — into the spec's
// single-operation Shaper abstraction: one run in, one Result out,
// with segmentation as an explicit, separate, idempotent stage.
package shaping

import (
	"glyphforge.dev/fixedmath"
	"glyphforge.dev/font"
)

// Direction is the writing direction of a run.
type Direction uint8

const (
	LTR Direction = iota
	RTL
	TTB
	BTT
)

func (d Direction) String() string {
	switch d {
	case RTL:
		return "RTL"
	case TTB:
		return "TTB"
	case BTT:
		return "BTT"
	default:
		return "LTR"
	}
}

// Horizontal reports whether the direction advances along the X axis.
func (d Direction) Horizontal() bool { return d == LTR || d == RTL }

// Run is a contiguous slice of the input with a uniform shaping treatment
// (spec.md §3 "Text run").
type Run struct {
	Text string
	// ByteStart and ByteEnd give this run's byte range in the original
	// string that produced it.
	ByteStart, ByteEnd int
	Script             string // ISO 15924, e.g. "Latn", "Arab"
	Language           string // BCP-47, e.g. "en-US"
	Direction          Direction
	// FontOverride, if non-nil, replaces the paragraph-level font for this
	// run only.
	FontOverride *font.Spec
}

// GlyphID is a 32-bit glyph identifier, clamped to the font's glyph count;
// invalid identifiers collapse to 0 (notdef).
type GlyphID uint32

// PositionedGlyph is one shaped glyph (spec.md §3 "Positioned glyph").
type PositionedGlyph struct {
	GID GlyphID
	// Cluster is the byte offset into the original text that produced this
	// glyph.
	Cluster  int
	XOffset  fixedmath.Int26_6
	YOffset  fixedmath.Int26_6
	XAdvance fixedmath.Int26_6
}

// Result is the output of shaping one Run (spec.md §3 "Shaping result").
type Result struct {
	Text             string
	Glyphs           []PositionedGlyph
	AdvanceWidth     fixedmath.Int26_6
	AdvanceHeight    fixedmath.Int26_6
	Bounds           fixedmath.Rectangle26_6
	EffectiveFont    font.Spec
	ResolvedDir      Direction
}

// clampGID clamps a raw glyph id to glyphCount, collapsing out-of-range
// values to the notdef glyph (0), per spec.md §3.
func clampGID(raw uint32, glyphCount int) GlyphID {
	if glyphCount > 0 && int(raw) >= glyphCount {
		return 0
	}
	return GlyphID(raw)
}
