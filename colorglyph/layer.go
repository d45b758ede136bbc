package colorglyph

import (
	"image"
	"image/color"

	"glyphforge.dev/rasterize"
)

// Layer is one paint operation of a COLRv0-style flat color-glyph
// definition: an outline filled with a single brush (spec.md §4.4's
// simplest paint-graph shape, a list of layers painted back to front).
// COLRv1's richer graph (nested transforms, clips, blended layers) is
// addressed by pushing each Layer's outline and brush through a
// Compositor one at a time rather than by a dedicated graph type, since a
// flat layer list is what every color-glyph source this module resolves
// down to (COLRv0 layers directly, COLRv1 flattened by the face, bitmap
// strikes and SVG each contributing a single pre-composited layer).
type Layer struct {
	Outline rasterize.Outline
	Brush   Brush
}

// LayerSource is implemented by a font face that can decompose one glyph
// into its color layers. rasterize.Face implementations that also satisfy
// this interface get routed through the color-glyph compositor instead of
// the plain monochrome outline path (spec.md §4.4, §4.3 glyph-source
// preference order in source.go).
type LayerSource interface {
	ColorGlyphLayers(gid rasterize.GID, palette []color.NRGBA) ([]Layer, bool)
}

// RenderLayers paints layers back-to-front onto target at (originX,
// originY) in device pixels, using a fresh Compositor per glyph so each
// glyph's layer stack is independent (spec.md §4.4 "one paint graph per
// glyph").
func RenderLayers(target *image.NRGBA, layers []Layer, originX, originY int, ppem float64, palette []color.NRGBA) {
	comp := NewCompositor(target)
	comp.Palette = palette
	for _, l := range layers {
		bmp, err := rasterize.RasterizeOutline(l.Outline, ppem, rasterize.NonZero)
		if err != nil || bmp.Empty() {
			continue
		}
		paintLayerMask(comp, bmp, originX, originY, l.Brush)
	}
}

// paintLayerMask fills bmp's coverage with brush, using the cheaper
// flat-color path for solid brushes and the per-pixel sampling path for
// gradients (used by COLRv1's PaintLinearGradient/PaintRadialGradient/
// PaintSweepGradient) so both render correctly alongside each other within
// the same glyph's layer stack.
func paintLayerMask(comp *Compositor, bmp rasterize.Bitmap, originX, originY int, brush Brush) {
	if brush.Solid {
		comp.FillMask(bmp, originX, originY, brush.Color)
		return
	}
	comp.FillMaskBrush(bmp, originX, originY, brush)
}
