package pipeline

import (
	"image"
	"image/draw"

	"glyphforge.dev/render"
)

// compositeRuns merges the per-run canvases renderStage produces into a
// single line image, laid out left to right in run order with baselines
// aligned, so a line split into multiple runs (a script or bidi-level
// transition) renders completely instead of only its first run. The
// common single-run case returns that run's own Output unchanged, with no
// extra canvas allocation or padding.
func compositeRuns(outputs []*render.Output, opts render.Options) *render.Output {
	if len(outputs) == 1 {
		return outputs[0]
	}

	maxBaseline := 0
	for _, out := range outputs {
		if out.Baseline > maxBaseline {
			maxBaseline = out.Baseline
		}
	}

	width, height := 0, 0
	for _, out := range outputs {
		b := out.Image.Bounds()
		if h := b.Dy() + (maxBaseline - out.Baseline); h > height {
			height = h
		}
		width += b.Dx()
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	if opts.Background.A != 0 {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	x := 0
	for _, out := range outputs {
		b := out.Image.Bounds()
		yOffset := maxBaseline - out.Baseline
		dst := image.Rect(x, yOffset, x+b.Dx(), yOffset+b.Dy())
		draw.Draw(canvas, dst, out.Image, b.Min, draw.Over)
		x += b.Dx()
	}
	return &render.Output{Image: canvas, Baseline: maxBaseline}
}
