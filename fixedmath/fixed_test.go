package fixedmath

import "testing"

func TestMulRoundTrip(t *testing.T) {
	a := FromInt(3)
	b := FromFloat(0.5)
	got := Mul(a, b)
	want := FromFloat(1.5)
	if got != want {
		t.Errorf("Mul(3, 0.5) = %v, want %v", got, want)
	}
}

func TestDivClampsNearZero(t *testing.T) {
	a := FromInt(10)
	if got := Div(a, 0); got != maxI32 {
		t.Errorf("Div(10, 0) = %v, want max int32", got)
	}
	if got := Div(-a, 0); got != minI32 {
		t.Errorf("Div(-10, 0) = %v, want min int32", got)
	}
}

func TestRounding(t *testing.T) {
	x := FromFloat(1.6)
	if RoundFloor(x) != 1 {
		t.Errorf("RoundFloor(1.6) = %d, want 1", RoundFloor(x))
	}
	if RoundCeil(x) != 2 {
		t.Errorf("RoundCeil(1.6) = %d, want 2", RoundCeil(x))
	}
	if RoundNearest(x) != 2 {
		t.Errorf("RoundNearest(1.6) = %d, want 2", RoundNearest(x))
	}
}

func TestFlattenQuadStraightLine(t *testing.T) {
	from := Point26_6{X: FromInt(0), Y: FromInt(0)}
	ctrl := Point26_6{X: FromInt(5), Y: FromInt(0)}
	to := Point26_6{X: FromInt(10), Y: FromInt(0)}
	var pts []Point26_6
	FlattenQuad(from, ctrl, to, func(p Point26_6) { pts = append(pts, p) })
	if len(pts) != 1 || pts[0] != to {
		t.Errorf("flattening a collinear quad should emit exactly the endpoint, got %v", pts)
	}
}

func TestFlattenCubicRecursionBounded(t *testing.T) {
	from := Point26_6{X: FromInt(0), Y: FromInt(0)}
	ctrl0 := Point26_6{X: FromInt(0), Y: FromInt(1000)}
	ctrl1 := Point26_6{X: FromInt(1000), Y: FromInt(-1000)}
	to := Point26_6{X: FromInt(1000), Y: FromInt(0)}
	var pts []Point26_6
	FlattenCubic(from, ctrl0, ctrl1, to, func(p Point26_6) { pts = append(pts, p) })
	if len(pts) == 0 {
		t.Fatal("expected at least one emitted segment")
	}
	if len(pts) > 1<<maxCurveRecursion {
		t.Errorf("flattening emitted %d segments, expected recursion to stay bounded by depth %d", len(pts), maxCurveRecursion)
	}
	if pts[len(pts)-1] != to {
		t.Errorf("last emitted point = %v, want %v", pts[len(pts)-1], to)
	}
}
