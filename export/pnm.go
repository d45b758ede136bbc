package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
)

// PNMVariant selects among the Netpbm plain-text formats spec.md §4.7
// names: P1 (bitmap), P2 (grayscale), P3 (RGB).
type PNMVariant int

const (
	PNMBitmap PNMVariant = iota
	PNMGraymap
	PNMPixmap
)

// EncodePNM renders img as a plain-text Netpbm file. Alpha is composited
// against opaque white first, since PNM has no alpha channel.
func EncodePNM(img *image.NRGBA, variant PNMVariant) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	var buf bytes.Buffer

	switch variant {
	case PNMBitmap:
		fmt.Fprintf(&buf, "P1\n%d %d\n", w, h)
	case PNMGraymap:
		fmt.Fprintf(&buf, "P2\n%d %d\n255\n", w, h)
	default:
		fmt.Fprintf(&buf, "P3\n%d %d\n255\n", w, h)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := compositeOnWhite(img.NRGBAAt(x, y))
			switch variant {
			case PNMBitmap:
				lum := (int(r) + int(g) + int(b)) / 3
				bit := 1
				if lum > 127 {
					bit = 0
				}
				fmt.Fprintf(&buf, "%d ", bit)
			case PNMGraymap:
				lum := (int(r) + int(g) + int(b)) / 3
				fmt.Fprintf(&buf, "%d ", lum)
			default:
				fmt.Fprintf(&buf, "%d %d %d ", r, g, b)
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// compositeOnWhite flattens a straight-alpha color onto an opaque white
// backdrop, since PNM has no alpha channel.
func compositeOnWhite(c color.NRGBA) (r, g, b uint8) {
	a := uint32(c.A)
	blend := func(channel uint8) uint8 {
		return uint8((uint32(channel)*a + 255*(255-a)) / 255)
	}
	return blend(c.R), blend(c.G), blend(c.B)
}
