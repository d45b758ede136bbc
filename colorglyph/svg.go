package colorglyph

import (
	"bytes"
	"compress/gzip"
	"image/color"
	"io"
	"regexp"
	"strconv"

	"glyphforge.dev/errs"
)

// gzipMagic is the two-byte prefix spec.md §4.4 says identifies a
// gzip-compressed SVG table entry.
var gzipMagic = []byte{0x1f, 0x8b}

// colorVarPattern matches CSS custom-property references of the form
// var(--colorN, fallback), which the SVG color-glyph table uses to
// reference the font's color palette (spec.md §4.4 "Embedded vector
// documents").
var colorVarPattern = regexp.MustCompile(`var\(--color(\d+)\s*,\s*([^)]+)\)`)

// DecompressSVGDocument inflates data if it is gzip-compressed (detected by
// magic prefix), otherwise returns it unchanged.
func DecompressSVGDocument(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != gzipMagic[0] || data[1] != gzipMagic[1] {
		return data, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.RenderFailure, "opening gzip SVG document", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.RenderFailure, "inflating gzip SVG document", err)
	}
	return out, nil
}

// SubstitutePaletteColors replaces every var(--colorN, fallback) reference
// in doc with the corresponding palette entry, falling back to the
// fallback color text when the palette has no entry at that index.
func SubstitutePaletteColors(doc []byte, palette []color.NRGBA) []byte {
	return colorVarPattern.ReplaceAllFunc(doc, func(match []byte) []byte {
		groups := colorVarPattern.FindSubmatch(match)
		idx, err := strconv.Atoi(string(groups[1]))
		if err != nil || idx < 0 || idx >= len(palette) {
			return groups[2]
		}
		return []byte(cssColor(palette[idx]))
	})
}

func cssColor(c color.NRGBA) string {
	if c.A == 255 {
		return "#" + hex(c.R) + hex(c.G) + hex(c.B)
	}
	return "rgba(" + strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," +
		strconv.Itoa(int(c.B)) + "," + strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64) + ")"
}

func hex(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}
