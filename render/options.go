// Package render orchestrates a shaping result, a font handle, and render
// parameters into a pixel canvas, generalizing gioui-gio's
// raster.Rasterizer.Frame (which walks an op.Ops display list and paints
// into an *image.RGBA via golang.org/x/image/draw) into the spec's
// single-shot render-request model.
package render

import (
	"image/color"
)

// AntiAlias selects the rasterization quality mode (spec.md §4.7).
type AntiAlias int

const (
	AntiAliasOff AntiAlias = iota
	AntiAliasGrayscale
	AntiAliasSubpixel // platform-dependent; this module only implements grayscale
)

// Format names an output encoding a render request may target. The render
// package itself always produces a raw RGBA canvas; Format only documents
// which export package encoder the caller intends to feed it to.
type Format int

const (
	FormatRaw Format = iota
	FormatPNG
	FormatSVG
	FormatPNM
)

// Options are the per-request render parameters spec.md §4.7 tabulates.
type Options struct {
	Format     Format
	Foreground color.NRGBA
	Background color.NRGBA // zero value (transparent) is a valid background
	Padding    int
	AntiAlias  AntiAlias
	Variations map[[4]byte]float64
	DPI        float64

	// ForceScalarBlend routes glyph compositing through the pure-Go
	// per-pixel fallback instead of the standard library's image/draw
	// DrawMask path (spec.md §4.7 "a scalar fallback is mandatory"). Exposed for
	// testing and for platforms where the optimized path misbehaves.
	ForceScalarBlend bool

	// GlyphCacheSize names a size for the rasterized-glyph-bitmap cache (the
	// third of spec.md §3's three named caches). Neither Render nor the
	// pipeline builder reads it; a GlyphCache's bound is the capacity passed
	// to NewGlyphCache.
	GlyphCacheSize int

	// Palette supplies the CPAL color entries a color-glyph face resolves
	// its layer brushes against (spec.md §4.4). Ignored by faces with no
	// color-glyph data.
	Palette []color.NRGBA
}

func (o Options) glyphCacheSize() int {
	if o.GlyphCacheSize > 0 {
		return o.GlyphCacheSize
	}
	return 512
}
