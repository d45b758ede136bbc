package export

import (
	"bytes"
	"image"
	"image/png"

	"glyphforge.dev/errs"
)

// EncodePNG encodes img as PNG. No pack repo wraps image/png with a
// higher-level encoder (gioui-gio's own PNG usage in text/gotext.go only
// decodes embedded bitmap strikes), so this is a direct stdlib call; see
// DESIGN.md.
func EncodePNG(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errs.Wrap(errs.ExportFailure, "encoding PNG", err)
	}
	return buf.Bytes(), nil
}
