package render

import (
	"image"
	"image/color"
	"math"

	"glyphforge.dev/fixedmath"
	"glyphforge.dev/font"
	"glyphforge.dev/shaping"
)

// Output is the result of a render request: a straight-alpha canvas plus
// the baseline row it was drawn against, which the pipeline package uses to
// align the canvases of several runs on a common baseline.
type Output struct {
	Image    *image.NRGBA
	Baseline int
}

// sizeCanvas applies spec.md §4.7's canvas sizing rules: width from the
// wider of the shaped bounding box and the total advance, height from the
// font's vertical metrics, both padded, with up to 2x headroom on height
// for glyphs that overshoot typical ascender/descender bounds. Zero-glyph
// input yields a 1x1 fully transparent canvas.
func sizeCanvas(result shaping.Result, handle *font.Handle, ppem float64, padding int) (width, height, baseline int) {
	if len(result.Glyphs) == 0 {
		return 1, 1, 0
	}
	boxWidth := fixedmath.ToFloat(result.Bounds.Max.X - result.Bounds.Min.X)
	advanceWidth := fixedmath.ToFloat(result.AdvanceWidth)
	width = int(math.Ceil(math.Max(boxWidth, advanceWidth))) + 2*padding
	if width < 1+2*padding {
		width = 1 + 2*padding
	}

	ascenderPx := handle.Metrics.ScaleToPixels(handle.Metrics.Ascender, ppem)
	descenderPx := handle.Metrics.ScaleToPixels(-handle.Metrics.Descender, ppem)
	baseHeight := math.Ceil(ascenderPx + descenderPx)

	boxHeight := fixedmath.ToFloat(result.Bounds.Max.Y - result.Bounds.Min.Y)
	headroom := baseHeight
	if boxHeight > baseHeight {
		headroom = math.Min(boxHeight, baseHeight*2)
	}
	height = int(headroom) + 2*padding
	if height < 1+2*padding {
		height = 1 + 2*padding
	}

	// Baseline placement: padding + ascender from the top of the canvas
	// (spec.md §4.7, Open Question 2 resolved in favor of this computed
	// formula over a fixed-ratio heuristic).
	baseline = padding + int(math.Round(ascenderPx))
	return width, height, baseline
}

func newCanvas(width, height int, background color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if background.A == 0 && background.R == 0 && background.G == 0 && background.B == 0 {
		return img // already zero-valued, i.e. fully transparent
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, background)
		}
	}
	return img
}
