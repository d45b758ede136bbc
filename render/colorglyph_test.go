package render

import (
	"image/color"
	"testing"

	"github.com/go-text/typesetting/opentype/api"

	"glyphforge.dev/colorglyph"
	"glyphforge.dev/fixedmath"
	"glyphforge.dev/font"
	"glyphforge.dev/rasterize"
	"glyphforge.dev/shaping"
)

// colorFace is a minimal rasterize.Face that also satisfies
// colorglyph.LayerSource, standing in for a face backed by a COLR table.
type colorFace struct{}

func (colorFace) GlyphData(gid api.GID) api.GlyphData { return api.GlyphOutline{} }
func (colorFace) Upem() uint16                        { return 1000 }

func squareLayer(x0, y0, x1, y1 float64, c color.NRGBA) colorglyph.Layer {
	arg := func(x, y float64) fixedmath.Point26_6 {
		return fixedmath.Point26_6{X: fixedmath.FromFloat(x), Y: fixedmath.FromFloat(y)}
	}
	return colorglyph.Layer{
		Outline: rasterize.Outline{
			UnitsPerEm: 1000,
			Segments: []rasterize.Segment{
				{Op: rasterize.SegmentMoveTo, Args: [3]fixedmath.Point26_6{arg(x0, y0)}},
				{Op: rasterize.SegmentLineTo, Args: [3]fixedmath.Point26_6{arg(x1, y0)}},
				{Op: rasterize.SegmentLineTo, Args: [3]fixedmath.Point26_6{arg(x1, y1)}},
				{Op: rasterize.SegmentLineTo, Args: [3]fixedmath.Point26_6{arg(x0, y1)}},
			},
		},
		Brush: colorglyph.NewSolidBrush(c),
	}
}

func (colorFace) ColorGlyphLayers(gid rasterize.GID, palette []color.NRGBA) ([]colorglyph.Layer, bool) {
	return []colorglyph.Layer{
		squareLayer(100, 100, 900, 900, color.NRGBA{R: 200, G: 10, B: 10, A: 255}),
	}, true
}

func TestRenderRoutesColorGlyphsThroughCompositor(t *testing.T) {
	handle := &font.Handle{Face: colorFace{}, Metrics: font.Metrics{UnitsPerEm: 1000, Ascender: 800, Descender: 200}}
	result := shaping.Result{
		Glyphs:        []shaping.PositionedGlyph{{GID: 1, XAdvance: fixedmath.FromFloat(20)}},
		EffectiveFont: font.Spec{SizePx: 32},
	}
	cache := NewGlyphCache(8)
	out, err := Render(result, handle, "color-face", cache, Options{Padding: 4, Foreground: color.NRGBA{A: 255}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	painted := false
	bounds := out.Image.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y && !painted; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := out.Image.NRGBAAt(x, y)
			if c.R == 200 && c.G == 10 && c.B == 10 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Fatal("expected the color-glyph layer's red fill to appear on the canvas")
	}
}
