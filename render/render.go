package render

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"glyphforge.dev/colorglyph"
	"glyphforge.dev/errs"
	"glyphforge.dev/fixedmath"
	"glyphforge.dev/font"
	"glyphforge.dev/rasterize"
	"glyphforge.dev/shaping"
)

// Render produces a canvas from a shaping result and font handle, following
// spec.md §4.7: size the canvas, place the baseline, walk each positioned
// glyph, rasterize (or fetch from cache), and composite with Porter-Duff
// source-over. A glyph whose rasterization fails is logged through
// slog.Default and skipped; the rest of the run is still rendered.
func Render(result shaping.Result, handle *font.Handle, faceIdentity string, cache *GlyphCache, opts Options) (*Output, error) {
	ppem := result.EffectiveFont.SizePx
	if ppem <= 0 {
		return nil, errs.New(errs.RenderFailure, "render: shaping result has no effective size")
	}

	width, height, baseline := sizeCanvas(result, handle, ppem, opts.Padding)
	if len(result.Glyphs) == 0 {
		return &Output{Image: newCanvas(width, height, color.NRGBA{}), Baseline: baseline}, nil
	}
	canvas := newCanvas(width, height, opts.Background)
	out := &Output{Image: canvas, Baseline: baseline}

	fillRule := rasterize.NonZero
	face, ok := handle.Face.(rasterize.Face)
	if !ok {
		return nil, errs.New(errs.RenderFailure, "render: font face does not expose outline data")
	}
	layerSource, hasColor := handle.Face.(colorglyph.LayerSource)

	var pen fixedmath.Int26_6
	for _, g := range result.Glyphs {
		x := opts.Padding + fixedmath.RoundNearest(pen+g.XOffset)
		y := baseline + fixedmath.RoundNearest(g.YOffset)
		pen += g.XAdvance

		if hasColor {
			if layers, ok := layerSource.ColorGlyphLayers(rasterize.GID(g.GID), opts.Palette); ok {
				colorglyph.RenderLayers(canvas, layers, x, y, ppem, opts.Palette)
				continue
			}
		}

		outline, ok := rasterize.ExtractOutline(face, rasterize.GID(g.GID))
		if !ok {
			continue // bitmap-only glyph with no vector outline
		}
		bmp, err := cache.Rasterize(faceIdentity, uint32(g.GID), outline, ppem, opts.Variations, fillRule)
		if err != nil {
			slog.Warn("render: skipping glyph", slog.Int("glyph", int(g.GID)), slog.Any("err", err))
			continue
		}
		if bmp.Empty() {
			continue
		}
		blendGlyph(canvas, bmp, x, y, opts.Foreground, opts.ForceScalarBlend)
	}
	return out, nil
}

// blendGlyph composites a coverage bitmap onto canvas at (originX, originY)
// plus the bitmap's own Left/Top offsets, using the standard library's
// image/draw DrawMask with draw.Over by default (the "vectorized" path of
// spec.md §4.7), or an explicit scalar per-pixel loop when forceScalar is
// set.
func blendGlyph(canvas *image.NRGBA, bmp rasterize.Bitmap, originX, originY int, fg color.NRGBA, forceScalar bool) {
	dstRect := image.Rect(originX+bmp.Left, originY+bmp.Top, originX+bmp.Left+bmp.Width, originY+bmp.Top+bmp.Height)
	if !forceScalar {
		mask := &image.Alpha{Pix: bmp.Pix, Stride: bmp.Width, Rect: image.Rect(0, 0, bmp.Width, bmp.Height)}
		draw.DrawMask(canvas, dstRect, image.NewUniform(fg), image.Point{}, mask, image.Point{}, draw.Over)
		return
	}
	scalarBlend(canvas, bmp, originX, originY, fg)
}

// scalarBlend is the mandatory non-accelerated fallback: one pixel at a
// time, coverage-weighted Porter-Duff source-over.
func scalarBlend(canvas *image.NRGBA, bmp rasterize.Bitmap, originX, originY int, fg color.NRGBA) {
	bounds := canvas.Bounds()
	for row := 0; row < bmp.Height; row++ {
		py := originY + bmp.Top + row
		if py < bounds.Min.Y || py >= bounds.Max.Y {
			continue
		}
		for col := 0; col < bmp.Width; col++ {
			px := originX + bmp.Left + col
			if px < bounds.Min.X || px >= bounds.Max.X {
				continue
			}
			coverage := bmp.Pix[row*bmp.Width+col]
			if coverage == 0 {
				continue
			}
			srcA := uint32(fg.A) * uint32(coverage) / 255
			dst := canvas.NRGBAAt(px, py)
			canvas.SetNRGBA(px, py, porterDuffOver(dst, fg, uint8(srcA)))
		}
	}
}

// porterDuffOver blends src (with an overridden alpha srcA) over dst:
// dst <- src*srcA + dst*(1-srcA), computed in straight alpha per spec.md
// §4.7's blending formula.
func porterDuffOver(dst, src color.NRGBA, srcA uint8) color.NRGBA {
	if srcA == 255 {
		return color.NRGBA{R: src.R, G: src.G, B: src.B, A: 255}
	}
	if srcA == 0 {
		return dst
	}
	outA := uint32(srcA) + uint32(dst.A)*(255-uint32(srcA))/255
	if outA == 0 {
		return color.NRGBA{}
	}
	blend := func(cs, cd uint8) uint8 {
		num := uint32(cs)*uint32(srcA) + uint32(cd)*uint32(dst.A)*(255-uint32(srcA))/255
		return uint8(num / outA)
	}
	return color.NRGBA{R: blend(src.R, dst.R), G: blend(src.G, dst.G), B: blend(src.B, dst.B), A: uint8(outA)}
}
