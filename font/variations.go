package font

import (
	"log/slog"

	textfont "github.com/go-text/typesetting/font"
)

// Axis describes one entry of a variable font's fvar table.
type Axis struct {
	Tag              Tag
	Minimum, Default, Maximum float64
}

// Axes reports the variation axes declared by the face, if it is variable.
func (h *Handle) Axes() []Axis {
	variable, ok := h.Face.(interface {
		Variations() []textfont.Variation
	})
	if !ok {
		return nil
	}
	var axes []Axis
	for _, v := range variable.Variations() {
		axes = append(axes, Axis{
			Tag:     Tag(v.Tag),
			Minimum: float64(v.Minimum),
			Default: float64(v.Default),
			Maximum: float64(v.Maximum),
		})
	}
	return axes
}

// ClampVariations validates a requested variation coordinate map against the
// face's declared axes: unknown tags are dropped with a logged warning,
// known tags are clamped into [min,max] (also logged, as a warning rather
// than a failure per spec.md §7). The weight (wght) and width (wdth) axes
// get an additional hard clamp to the OpenType-declared legal ranges as a
// defense in depth measure, per spec.md §4.6.
func ClampVariations(h *Handle, requested map[Tag]float64, log *slog.Logger) map[Tag]float64 {
	if len(requested) == 0 {
		return nil
	}
	axes := h.Axes()
	byTag := make(map[Tag]Axis, len(axes))
	for _, a := range axes {
		byTag[a.Tag] = a
	}
	out := make(map[Tag]float64, len(requested))
	for tag, v := range requested {
		axis, known := byTag[tag]
		if !known {
			if log != nil {
				log.Warn("font: dropping unknown variation axis", slog.String("tag", tag.String()))
			}
			continue
		}
		clamped := clamp(v, axis.Minimum, axis.Maximum)
		clamped = hardClamp(tag, clamped)
		if clamped != v && log != nil {
			log.Warn("font: variation value clamped to axis range",
				slog.String("tag", tag.String()),
				slog.Float64("requested", v),
				slog.Float64("clamped", clamped))
		}
		out[tag] = clamped
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	tagWght = Tag{'w', 'g', 'h', 't'}
	tagWdth = Tag{'w', 'd', 't', 'h'}
)

// hardClamp enforces the well-known legal ranges for weight and width axes
// regardless of what a (possibly malformed) font declares.
func hardClamp(tag Tag, v float64) float64 {
	switch tag {
	case tagWght:
		return clamp(v, 1, 1000)
	case tagWdth:
		return clamp(v, 1, 1000)
	default:
		return v
	}
}
