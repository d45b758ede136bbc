package pipeline

import (
	"fmt"

	"glyphforge.dev/export"
	"glyphforge.dev/render"
)

// DefaultExporter dispatches to the export package encoder matching
// opts.Format (spec.md §4.9's export stage), so a Builder wired with
// DefaultExporter honors whatever format the caller requested through
// render.Options without the caller hand-picking an encoder.
var DefaultExporter Exporter = ExporterFunc(func(out *render.Output, opts render.Options) ([]byte, error) {
	switch opts.Format {
	case render.FormatRaw:
		return export.EncodeRaw(out.Image), nil
	case render.FormatPNG:
		return export.EncodePNG(out.Image)
	case render.FormatSVG:
		return export.EncodeSVG(out.Image, opts.DPI)
	case render.FormatPNM:
		return export.EncodePNM(out.Image, export.PNMPixmap), nil
	default:
		return nil, fmt.Errorf("pipeline: unknown export format %v", opts.Format)
	}
})
