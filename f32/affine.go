// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "math"

// Affine2D is a 2D affine transformation matrix in row-major order:
//
//	a b c
//	d e f
//	0 0 1
//
// The zero value of Affine2D is the identity transform.
type Affine2D struct {
	a, b, c float32
	d, e, f float32
}

// Pt is a shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// NewAffine2D creates a new Affine2D transform from the matrix elements.
func NewAffine2D(a, b, c, d, e, f float32) Affine2D {
	return Affine2D{a: a - 1, b: b, c: c, d: d, e: e - 1, f: f}
}

func (a Affine2D) elems() (sa, sb, sc, sd, se, sf float32) {
	return a.a + 1, a.b, a.c, a.d, a.e + 1, a.f
}

// Offset the transformation by p.
func (a Affine2D) Offset(p Point) Affine2D {
	return a.Mul(NewAffine2D(1, 0, p.X, 0, 1, p.Y))
}

// Scale the transformation around the fixed point p.
func (a Affine2D) Scale(p Point, s Point) Affine2D {
	return a.Mul(NewAffine2D(
		s.X, 0, p.X-s.X*p.X,
		0, s.Y, p.Y-s.Y*p.Y,
	))
}

// Rotate the transformation by angle radians around the fixed point p.
func (a Affine2D) Rotate(p Point, angle float32) Affine2D {
	sin, cos := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	return a.Mul(NewAffine2D(
		cos, -sin, p.X-cos*p.X+sin*p.Y,
		sin, cos, p.Y-sin*p.X-cos*p.Y,
	))
}

// Shear the transformation by the given angles (radians) around p.
func (a Affine2D) Shear(p Point, sx, sy float32) Affine2D {
	tx, ty := float32(math.Tan(float64(sx))), float32(math.Tan(float64(sy)))
	return a.Mul(NewAffine2D(
		1, tx, -p.Y*tx,
		ty, 1, -p.X*ty,
	))
}

// Mul returns the transformation a followed by b: b.Transform(a.Transform(p)).
func (a Affine2D) Mul(b Affine2D) Affine2D {
	a1, b1, c1, d1, e1, f1 := a.elems()
	a2, b2, c2, d2, e2, f2 := b.elems()
	return NewAffine2D(
		a2*a1+b2*d1, a2*b1+b2*e1, a2*c1+b2*f1+c2,
		d2*a1+e2*d1, d2*b1+e2*e1, d2*c1+e2*f1+f2,
	)
}

// Invert returns the inverse of a. The result is undefined if a is
// singular.
func (a Affine2D) Invert() Affine2D {
	sa, sb, sc, sd, se, sf := a.elems()
	det := sa*se - sb*sd
	if det == 0 {
		return Affine2D{}
	}
	inv := 1 / det
	ia := se * inv
	ib := -sb * inv
	id := -sd * inv
	ie := sa * inv
	ic := -(sc*ia + sf*ib)
	iff := -(sc*id + sf*ie)
	return NewAffine2D(ia, ib, ic, id, ie, iff)
}

// Transform applies the transformation to p.
func (a Affine2D) Transform(p Point) Point {
	sa, sb, sc, sd, se, sf := a.elems()
	return Point{
		X: sa*p.X + sb*p.Y + sc,
		Y: sd*p.X + se*p.Y + sf,
	}
}

// Elems returns the raw matrix elements in row-major order.
func (a Affine2D) Elems() (sa, sb, sc, sd, se, sf float32) {
	return a.elems()
}

// IsIdentity reports whether a is the identity transform.
func (a Affine2D) IsIdentity() bool {
	return a == Affine2D{}
}

// Transform maps r's four corners through a and returns their axis-aligned
// bounding rectangle. The paint graph's clip stack uses this to push a
// box clip in the current transform's space rather than always in raw
// device pixels (spec.md §4.4 "transform stack" combined with "clip
// stack").
func (r Rectangle) Transform(a Affine2D) Rectangle {
	corners := [4]Point{
		a.Transform(Point{X: r.Min.X, Y: r.Min.Y}),
		a.Transform(Point{X: r.Max.X, Y: r.Min.Y}),
		a.Transform(Point{X: r.Max.X, Y: r.Max.Y}),
		a.Transform(Point{X: r.Min.X, Y: r.Max.Y}),
	}
	out := Rectangle{Min: corners[0], Max: corners[0]}
	for _, p := range corners[1:] {
		if p.X < out.Min.X {
			out.Min.X = p.X
		}
		if p.Y < out.Min.Y {
			out.Min.Y = p.Y
		}
		if p.X > out.Max.X {
			out.Max.X = p.X
		}
		if p.Y > out.Max.Y {
			out.Max.Y = p.Y
		}
	}
	return out
}
