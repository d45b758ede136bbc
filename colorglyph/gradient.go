package colorglyph

import (
	"image/color"
	"math"
	"sort"

	"glyphforge.dev/f32"
)

// ExtendMode controls how a gradient samples outside its [0,1] offset
// range (spec.md §4.4 "Fill with brush").
type ExtendMode int

const (
	ExtendPad ExtendMode = iota
	ExtendRepeat
	ExtendReflect
)

// Stop is one color stop of a gradient, at offset in [0,1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// GradientKind distinguishes the three gradient shapes spec.md §4.4 names.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientSweep
)

// Brush is a fill source: a solid color or a gradient. Exactly one of the
// gradient-specific fields is meaningful, selected by Kind.
type Brush struct {
	Kind   GradientKind
	Solid  bool
	Color  color.NRGBA // used when Solid, or as a degenerate single-stop gradient
	Stops  []Stop
	Extend ExtendMode

	// P0, P1 are the gradient axis endpoints (linear) or center+edge
	// (radial uses P0 as center and ignores P1; sweep uses P0 as center and
	// the angle of P1-P0 as the start angle).
	P0, P1 f32.Point
	// Radius1 is the radius of a radial gradient. Radial gradients are
	// single-circle only: Radius0 is not read.
	Radius0, Radius1 float32
}

// NewSolidBrush builds a flat-color brush.
func NewSolidBrush(c color.NRGBA) Brush {
	return Brush{Solid: true, Color: c}
}

// normalizedStops returns Stops sorted by offset, per spec.md §4.4 ("color
// stops are sorted by offset").
func (b Brush) normalizedStops() []Stop {
	stops := append([]Stop(nil), b.Stops...)
	sort.Slice(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
	return stops
}

// At samples the brush at a normalized gradient offset t (pre-extend-mode
// application by the caller for linear/radial; for sweep, t is the
// normalized angle already in [0,1)).
func (b Brush) At(t float64) color.NRGBA {
	if b.Solid {
		return b.Color
	}
	stops := b.normalizedStops()
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	if len(stops) == 1 {
		// A single-stop gradient degenerates to a solid color (spec.md
		// §4.4).
		return stops[0].Color
	}
	t = applyExtend(t, b.Extend)
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			prev := stops[i-1]
			span := stops[i].Offset - prev.Offset
			if span <= 0 {
				return stops[i].Color
			}
			frac := (t - prev.Offset) / span
			return lerpColor(prev.Color, stops[i].Color, frac)
		}
	}
	return last.Color
}

// MedianStop returns the color of the middle stop, used as the fallback
// for sweep gradients when no native sweep-gradient primitive is available
// (spec.md §4.4).
func (b Brush) MedianStop() color.NRGBA {
	stops := b.normalizedStops()
	if len(stops) == 0 {
		return color.NRGBA{}
	}
	return stops[len(stops)/2].Color
}

func applyExtend(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t = math.Mod(t, 1)
		if t < 0 {
			t += 1
		}
		return t
	case ExtendReflect:
		t = math.Mod(t, 2)
		if t < 0 {
			t += 2
		}
		if t > 1 {
			t = 2 - t
		}
		return t
	default: // ExtendPad
		if t < 0 {
			return 0
		}
		if t > 1 {
			return 1
		}
		return t
	}
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// SampleAt evaluates the brush at canvas point p, implementing the three
// gradient geometries.
func (b Brush) SampleAt(p f32.Point) color.NRGBA {
	if b.Solid {
		return b.Color
	}
	switch b.Kind {
	case GradientRadial:
		d := p.Sub(b.P0)
		r := b.Radius1
		if r == 0 {
			return b.At(0)
		}
		dist := math.Hypot(float64(d.X), float64(d.Y))
		return b.At(dist / float64(r))
	case GradientSweep:
		d := p.Sub(b.P0)
		start := math.Atan2(float64(b.P1.Y-b.P0.Y), float64(b.P1.X-b.P0.X))
		angle := math.Atan2(float64(d.Y), float64(d.X)) - start
		angle = math.Mod(angle, 2*math.Pi)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		return b.At(angle / (2 * math.Pi))
	default: // GradientLinear
		axis := b.P1.Sub(b.P0)
		length2 := float64(axis.X*axis.X + axis.Y*axis.Y)
		if length2 == 0 {
			return b.At(0)
		}
		rel := p.Sub(b.P0)
		t := float64(rel.X*axis.X+rel.Y*axis.Y) / length2
		return b.At(t)
	}
}
