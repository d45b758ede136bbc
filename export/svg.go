package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
)

// EncodeSVG wraps the canvas as a PNG-embedded raster image inside an SVG
// 1.1 document, so an SVG export still carries a resolution-independent
// container even though the underlying render pipeline is raster-only
// (vector glyph export is out of scope per spec.md §1's layout/editable
// non-goals).
func EncodeSVG(img *image.NRGBA, dpi float64) ([]byte, error) {
	png, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		bounds.Dx(), bounds.Dy(), bounds.Dx(), bounds.Dy())
	if dpi > 0 {
		fmt.Fprintf(&buf, `<!-- dpi: %g -->`+"\n", dpi)
	}
	fmt.Fprintf(&buf, `<image width="%d" height="%d" href="data:image/png;base64,%s"/>`+"\n",
		bounds.Dx(), bounds.Dy(), base64.StdEncoding.EncodeToString(png))
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}
