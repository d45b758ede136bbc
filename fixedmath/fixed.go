// Package fixedmath provides the 26.6 fixed-point arithmetic kernel and
// Bézier curve flattening used by the rasterizer. One unit equals 1/64 of a
// pixel, matching golang.org/x/image/math/fixed.Int26_6.
package fixedmath

import "golang.org/x/image/math/fixed"

// Int26_6 is re-exported so callers of this package never need to import
// golang.org/x/image/math/fixed directly.
type Int26_6 = fixed.Int26_6

// Point26_6 is a point in 26.6 fixed-point coordinates.
type Point26_6 = fixed.Point26_6

// Rectangle26_6 is an axis-aligned rectangle in 26.6 fixed-point
// coordinates.
type Rectangle26_6 = fixed.Rectangle26_6

const (
	shift  = 6
	maxI32 = 1<<31 - 1
	minI32 = -1 << 31
)

// FromInt converts an integer pixel count to fixed-point.
func FromInt(i int) Int26_6 {
	return fixed.I(i)
}

// FromFloat converts a floating-point pixel count to fixed-point.
func FromFloat(f float64) Int26_6 {
	return fixed.Int26_6(f * 64)
}

// ToFloat converts fixed-point back to a float64 pixel count.
func ToFloat(x Int26_6) float64 {
	return float64(x) / 64
}

// Mul multiplies two fixed-point values, widening to 64 bits for the
// intermediate product so the result doesn't overflow before the final
// shift back down to 26.6.
func Mul(a, b Int26_6) Int26_6 {
	return Int26_6((int64(a)*int64(b) + 1<<(shift-1)) >> shift)
}

// Div divides a by b in fixed-point, clamping to the signed 32-bit range
// when b approaches zero instead of panicking or producing garbage from
// integer overflow.
func Div(a, b Int26_6) Int26_6 {
	if b == 0 {
		if a >= 0 {
			return maxI32
		}
		return minI32
	}
	q := (int64(a) << shift) / int64(b)
	if q > maxI32 {
		return maxI32
	}
	if q < minI32 {
		return minI32
	}
	return Int26_6(q)
}

// RoundFloor rounds x down to the nearest integer pixel.
func RoundFloor(x Int26_6) int { return x.Floor() }

// RoundCeil rounds x up to the nearest integer pixel.
func RoundCeil(x Int26_6) int { return x.Ceil() }

// RoundNearest rounds x to the nearest integer pixel, ties toward positive
// infinity.
func RoundNearest(x Int26_6) int { return x.Round() }
