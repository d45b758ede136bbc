// Package colorglyph interprets a font's color-glyph tables (COLR, SVG,
// bitmap strikes) into rendered pixels, generalizing the single Uniform/
// draw.Over path gioui-gio/raster/raster.go takes for flat-color fills into
// the full paint-graph model spec.md §4.4 describes. No pack repo
// implements the W3C/PDF blend-mode math directly (willow's BlendMode is a
// passthrough to ebiten's GPU blend state, not per-pixel arithmetic), so
// this file works in plain image/color arithmetic; see DESIGN.md.
package colorglyph

import "image/color"

// BlendMode names one of the compositing operators spec.md §4.4 lists.
// The zero value is BlendClear; Composite treats any value outside the
// named constants as BlendSrcOver.
type BlendMode int

const (
	BlendClear BlendMode = iota
	BlendSrc
	BlendDst
	BlendSrcOver
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcAtop
	BlendDstAtop
	BlendXor
	BlendPlus
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendMultiply
	BlendHSLHue
	BlendHSLSaturation
	BlendHSLColor
	BlendHSLLuminosity
)

// straight is an unpremultiplied, [0,1]-normalized color channel tuple.
type straight struct{ r, g, b, a float64 }

func toStraight(c color.NRGBA) straight {
	return straight{
		r: float64(c.R) / 255,
		g: float64(c.G) / 255,
		b: float64(c.B) / 255,
		a: float64(c.A) / 255,
	}
}

func (s straight) toNRGBA() color.NRGBA {
	return color.NRGBA{
		R: clamp255(s.r * 255),
		G: clamp255(s.g * 255),
		B: clamp255(s.b * 255),
		A: clamp255(s.a * 255),
	}
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Composite blends src over dst according to m, returning the resulting
// straight-alpha color. Porter-Duff terms (Fa, Fb) follow the classic
// definitions; the separable blend modes (screen, multiply, etc.) follow
// the W3C compositing spec's "simple alpha compositing" formulation, which
// first blends colors ignoring alpha then mixes by coverage.
func (m BlendMode) Composite(dst, src color.NRGBA) color.NRGBA {
	d, s := toStraight(dst), toStraight(src)
	switch m {
	case BlendClear:
		return color.NRGBA{}
	case BlendSrc:
		return src
	case BlendDst:
		return dst
	case BlendDstOver:
		return portDuff(d, s, 1-d.a, 1).toNRGBA()
	case BlendSrcIn:
		return portDuff(d, s, d.a, 0).toNRGBA()
	case BlendDstIn:
		return portDuff(d, s, 0, s.a).toNRGBA()
	case BlendSrcOut:
		return portDuff(d, s, 1-d.a, 0).toNRGBA()
	case BlendDstOut:
		return portDuff(d, s, 0, 1-s.a).toNRGBA()
	case BlendSrcAtop:
		return portDuff(d, s, d.a, 1-s.a).toNRGBA()
	case BlendDstAtop:
		return portDuff(d, s, 1-d.a, s.a).toNRGBA()
	case BlendXor:
		return portDuff(d, s, 1-d.a, 1-s.a).toNRGBA()
	case BlendPlus:
		return straight{
			r: clampUnit(d.r*d.a + s.r*s.a),
			g: clampUnit(d.g*d.a + s.g*s.a),
			b: clampUnit(d.b*d.a + s.b*s.a),
			a: clampUnit(d.a + s.a),
		}.toNRGBA()
	case BlendHSLHue, BlendHSLSaturation, BlendHSLColor, BlendHSLLuminosity:
		return hslBlend(m, d, s).toNRGBA()
	default:
		blend := separableBlend(m, d, s)
		return mixBySrcOver(d, s, blend).toNRGBA()
	}
}

// portDuff implements dst <- src*Fa + dst*Fb, the Porter-Duff term form for
// modes that don't mix colors, just select/attenuate by coverage.
func portDuff(d, s straight, fa, fb float64) straight {
	a := s.a*fa + d.a*fb
	if a == 0 {
		return straight{}
	}
	return straight{
		r: (s.r*s.a*fa + d.r*d.a*fb) / a,
		g: (s.g*s.a*fa + d.g*d.a*fb) / a,
		b: (s.b*s.a*fa + d.b*d.a*fb) / a,
		a: a,
	}
}

// separableBlend computes the per-channel blended color (ignoring alpha
// mixing, which mixBySrcOver layers on afterward) for the modes whose
// channels blend independently.
func separableBlend(m BlendMode, d, s straight) straight {
	f := func(cd, cs float64) float64 {
		switch m {
		case BlendScreen:
			return cd + cs - cd*cs
		case BlendMultiply:
			return cd * cs
		case BlendOverlay:
			return hardLight(cs, cd)
		case BlendDarken:
			return min(cd, cs)
		case BlendLighten:
			return max(cd, cs)
		case BlendColorDodge:
			if cd == 0 {
				return 0
			}
			if cs == 1 {
				return 1
			}
			return min(1, cd/(1-cs))
		case BlendColorBurn:
			if cd == 1 {
				return 1
			}
			if cs == 0 {
				return 0
			}
			return 1 - min(1, (1-cd)/cs)
		case BlendHardLight:
			return hardLight(cd, cs)
		case BlendSoftLight:
			return softLight(cd, cs)
		case BlendDifference:
			return abs(cd - cs)
		case BlendExclusion:
			return cd + cs - 2*cd*cs
		default: // BlendSrcOver and anything unrecognized
			return cs
		}
	}
	return straight{r: f(d.r, s.r), g: f(d.g, s.g), b: f(d.b, s.b), a: s.a}
}

func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return 2 * cb * cs
	}
	return cb + (2*cs-1) - cb*(2*cs-1)
}

func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = sqrtApprox(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func sqrtApprox(v float64) float64 {
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 12; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}

// mixBySrcOver combines the separably-blended color Cr with the backdrop
// using the W3C "simple alpha compositing" formula: the blended color only
// applies where both src and dst have coverage; outside that, src-over
// degenerates correctly at the edges.
func mixBySrcOver(d, s straight, blended straight) straight {
	a := s.a + d.a*(1-s.a)
	if a == 0 {
		return straight{}
	}
	mix := func(cb, cs, cr float64) float64 {
		return (1-d.a)*s.a*cs + d.a*s.a*cr + (1-s.a)*d.a*cb
	}
	return straight{
		r: mix(d.r, s.r, blended.r) / a,
		g: mix(d.g, s.g, blended.g) / a,
		b: mix(d.b, s.b, blended.b) / a,
		a: a,
	}
}

// hslBlend implements the four non-separable HSL blend modes per the
// PDF/W3C compositing spec's Lum/Sat/SetLum/SetSat construction.
func hslBlend(m BlendMode, d, s straight) straight {
	var r, g, b float64
	switch m {
	case BlendHSLHue:
		r, g, b = setSat(s.r, s.g, s.b, sat(d.r, d.g, d.b))
		r, g, b = setLum(r, g, b, lum(d.r, d.g, d.b))
	case BlendHSLSaturation:
		r, g, b = setSat(d.r, d.g, d.b, sat(s.r, s.g, s.b))
		r, g, b = setLum(r, g, b, lum(d.r, d.g, d.b))
	case BlendHSLColor:
		r, g, b = setLum(s.r, s.g, s.b, lum(d.r, d.g, d.b))
	default: // BlendHSLLuminosity
		r, g, b = setLum(d.r, d.g, d.b, lum(s.r, s.g, s.b))
	}
	return mixBySrcOver(d, s, straight{r: r, g: g, b: b, a: s.a})
}

func lum(r, g, b float64) float64 { return 0.3*r + 0.59*g + 0.11*b }

// setLum shifts r,g,b so their luminosity equals l, then clips the result
// back into range while preserving luminosity.
func setLum(r, g, b, l float64) (float64, float64, float64) {
	d := l - lum(r, g, b)
	r, g, b = r+d, g+d, b+d
	return clipColor(r, g, b)
}

func clipColor(r, g, b float64) (float64, float64, float64) {
	l := lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)
	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

func sat(r, g, b float64) float64 { return max(r, g, b) - min(r, g, b) }

func setSat(r, g, b, s float64) (float64, float64, float64) {
	mx, mn := max(r, g, b), min(r, g, b)
	if mx == mn {
		return 0, 0, 0
	}
	scale := func(c float64) float64 { return (c - mn) * s / (mx - mn) }
	return scale(r), scale(g), scale(b)
}

func min(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func max(vs ...float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
