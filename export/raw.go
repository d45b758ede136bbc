// Package export encodes a render.Output into the wire formats spec.md §4.7
// and its JSONL streaming supplement describe: raw RGBA8, PNG, PNM, SVG,
// and JSON/JSONL metrics.
package export

import "image"

// EncodeRaw returns the canvas's pixels as packed RGBA8, row-major,
// straight alpha — the simplest export format, used as a baseline for the
// others and for callers that want to hand pixels directly to another
// imaging library.
func EncodeRaw(img *image.NRGBA) []byte {
	if img.Stride == img.Rect.Dx()*4 {
		return append([]byte(nil), img.Pix...)
	}
	bounds := img.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy()*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.PixOffset(bounds.Min.X, y)
		out = append(out, img.Pix[row:row+bounds.Dx()*4]...)
	}
	return out
}
