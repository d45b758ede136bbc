package fixedmath

// maxCurveRecursion bounds the recursive subdivision depth for quadratic and
// cubic Bézier segments. Pathological control points (near-cusps, huge
// coordinates) would otherwise recurse until the flatness test never
// succeeds; capping the depth means the worst case degrades to a straight
// line instead of exhausting the stack.
const maxCurveRecursion = 8

// flatnessTolerance is the maximum perpendicular distance, in fixed-point
// units, that a curve's control points may deviate from the chord before a
// subdivision is considered flat enough to emit as a line. Half a pixel.
const flatnessTolerance = 32 // 0.5px in 26.6

// LineEmitter receives the endpoints of straight segments produced by curve
// flattening. It is called once per segment with the segment's end point;
// the start point is always the previous emitted point (or the curve's own
// starting point for the first call).
type LineEmitter func(to Point26_6)

// FlattenQuad subdivides the quadratic Bézier (from, ctrl, to) into line
// segments and reports each via emit.
func FlattenQuad(from, ctrl, to Point26_6, emit LineEmitter) {
	flattenQuad(from, ctrl, to, emit, 0)
}

func flattenQuad(from, ctrl, to Point26_6, emit LineEmitter, depth int) {
	if depth >= maxCurveRecursion || quadFlatEnough(from, ctrl, to) {
		emit(to)
		return
	}
	// De Casteljau subdivision at t=0.5.
	ab := midpoint(from, ctrl)
	bc := midpoint(ctrl, to)
	mid := midpoint(ab, bc)
	flattenQuad(from, ab, mid, emit, depth+1)
	flattenQuad(mid, bc, to, emit, depth+1)
}

// FlattenCubic subdivides the cubic Bézier (from, ctrl0, ctrl1, to) into
// line segments and reports each via emit.
func FlattenCubic(from, ctrl0, ctrl1, to Point26_6, emit LineEmitter) {
	flattenCubic(from, ctrl0, ctrl1, to, emit, 0)
}

func flattenCubic(from, ctrl0, ctrl1, to Point26_6, emit LineEmitter, depth int) {
	if depth >= maxCurveRecursion || cubicFlatEnough(from, ctrl0, ctrl1, to) {
		emit(to)
		return
	}
	ab := midpoint(from, ctrl0)
	bc := midpoint(ctrl0, ctrl1)
	cd := midpoint(ctrl1, to)
	abc := midpoint(ab, bc)
	bcd := midpoint(bc, cd)
	mid := midpoint(abc, bcd)
	flattenCubic(from, ab, abc, mid, emit, depth+1)
	flattenCubic(mid, bcd, cd, to, emit, depth+1)
}

func midpoint(a, b Point26_6) Point26_6 {
	return Point26_6{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// quadFlatEnough measures the perpendicular distance of ctrl from the chord
// from-to and compares it against flatnessTolerance.
func quadFlatEnough(from, ctrl, to Point26_6) bool {
	return perpDistance(from, to, ctrl) <= flatnessTolerance
}

func cubicFlatEnough(from, ctrl0, ctrl1, to Point26_6) bool {
	return perpDistance(from, to, ctrl0) <= flatnessTolerance &&
		perpDistance(from, to, ctrl1) <= flatnessTolerance
}

// perpDistance returns the perpendicular distance of p from the line a-b, in
// 26.6 fixed-point units. When a == b (degenerate chord) it falls back to
// the straight-line distance from a to p.
func perpDistance(a, b, p Point26_6) Int26_6 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return hypot(p.X-a.X, p.Y-a.Y)
	}
	// |cross(b-a, p-a)| / |b-a|
	cross := int64(dx)*int64(p.Y-a.Y) - int64(dy)*int64(p.X-a.X)
	if cross < 0 {
		cross = -cross
	}
	length := hypot(dx, dy)
	if length == 0 {
		return 0
	}
	return Int26_6(cross / int64(length))
}

func hypot(dx, dy Int26_6) Int26_6 {
	fx, fy := ToFloat(dx), ToFloat(dy)
	return FromFloat(isqrt(fx*fx + fy*fy))
}

func isqrt(v float64) float64 {
	if v <= 0 {
		return 0
	}
	// Newton's method; a handful of iterations is plenty for the display
	// sizes this kernel operates at.
	x := v
	for i := 0; i < 12; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}
