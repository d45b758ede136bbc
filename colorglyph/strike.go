package colorglyph

import (
	"bytes"
	"image"
	"image/png"

	"glyphforge.dev/errs"
)

// StrikeFormat names the on-disk encoding of an embedded bitmap strike
// (spec.md §4.4 "Embedded bitmap strikes"; the three encodings are drawn
// from original_source/backends/typf-render-color/src/bitmap.rs).
type StrikeFormat int

const (
	StrikePNG StrikeFormat = iota
	StrikePremultipliedBGRA
	StrikeMonochromeMask
)

// Strike is one embedded bitmap glyph representation at a fixed
// pixels-per-em, before scaling to the requested size.
type Strike struct {
	Format     StrikeFormat
	Width      int
	Height     int
	PPEM       float64
	Data       []byte
	BearingX   float64
	BearingY   float64
}

// DecodeStrike decodes a strike's raw bytes into a straight-alpha NRGBA
// image, dispatching on Format.
func DecodeStrike(s Strike) (*image.NRGBA, error) {
	switch s.Format {
	case StrikePNG:
		return decodePNGStrike(s.Data)
	case StrikePremultipliedBGRA:
		return decodeBGRAStrike(s.Data, s.Width, s.Height)
	case StrikeMonochromeMask:
		return decodeMaskStrike(s.Data, s.Width, s.Height)
	default:
		return nil, errs.New(errs.RenderFailure, "unknown bitmap strike format")
	}
}

func decodePNGStrike(data []byte) (*image.NRGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.RenderFailure, "decoding PNG bitmap strike", err)
	}
	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// decodeBGRAStrike unpacks 4 bytes/pixel premultiplied BGRA (as used by
// sbix/CBDT strikes on some platforms) into straight-alpha NRGBA.
func decodeBGRAStrike(data []byte, width, height int) (*image.NRGBA, error) {
	if len(data) < width*height*4 {
		return nil, errs.New(errs.RenderFailure, "premultiplied BGRA strike data too short")
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		b, g, r, a := data[i*4], data[i*4+1], data[i*4+2], data[i*4+3]
		out.Pix[i*4], out.Pix[i*4+1], out.Pix[i*4+2], out.Pix[i*4+3] = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a), a
	}
	return out, nil
}

func unpremultiply(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := int(c) * 255 / int(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

// decodeMaskStrike expands a 1-bit-per-pixel alpha mask (row-padded to a
// byte boundary) into a black NRGBA image whose alpha channel carries the
// mask (255 where a bit is set, 0 elsewhere); callers recolor it with the
// requested foreground.
func decodeMaskStrike(data []byte, width, height int) (*image.NRGBA, error) {
	rowBytes := (width + 7) / 8
	if len(data) < rowBytes*height {
		return nil, errs.New(errs.RenderFailure, "monochrome mask strike data too short")
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < width; x++ {
			bit := row[x/8] & (0x80 >> uint(x%8))
			a := byte(0)
			if bit != 0 {
				a = 255
			}
			i := (y*width + x) * 4
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = 0, 0, 0, a
		}
	}
	return out, nil
}
