package rasterize

import (
	"testing"

	"glyphforge.dev/fixedmath"
)

func pt(x, y float64) fixedmath.Point26_6 {
	return fixedmath.Point26_6{X: fixedmath.FromFloat(x), Y: fixedmath.FromFloat(y)}
}

func TestScanConvertFillsSquareNonZero(t *testing.T) {
	sc := NewScanConverter(10, 10, NonZero)
	sc.Move(pt(2, 2))
	sc.Line(pt(8, 2))
	sc.Line(pt(8, 8))
	sc.Line(pt(2, 8))
	sc.Close()

	cov := sc.Coverage()
	// Center of the square should be covered.
	if cov[5*10+5] == 0 {
		t.Fatal("expected interior pixel to be covered")
	}
	// Corners of the grid should be empty.
	if cov[0] != 0 {
		t.Fatal("expected exterior pixel to be uncovered")
	}
}

func TestScanConvertEvenOddHole(t *testing.T) {
	sc := NewScanConverter(12, 12, EvenOdd)
	// Outer square, wound one way.
	sc.Move(pt(1, 1))
	sc.Line(pt(11, 1))
	sc.Line(pt(11, 11))
	sc.Line(pt(1, 11))
	sc.Close()
	// Inner square (hole), wound the same way — even-odd punches a hole
	// regardless of winding direction.
	sc.Move(pt(4, 4))
	sc.Line(pt(8, 4))
	sc.Line(pt(8, 8))
	sc.Line(pt(4, 8))
	sc.Close()

	cov := sc.Coverage()
	if cov[6*12+6] != 0 {
		t.Fatal("expected hole center to be uncovered under even-odd rule")
	}
	if cov[2*12+2] == 0 {
		t.Fatal("expected outer ring to be covered")
	}
}

func TestDownsampleAverages(t *testing.T) {
	cov := []byte{
		255, 255, 0, 0,
		255, 255, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	out, w, h := Downsample(cov, 4, 4, 2)
	if w != 2 || h != 2 {
		t.Fatalf("unexpected downsample dims: %dx%d", w, h)
	}
	if out[0] != 255 {
		t.Fatalf("expected fully covered cell, got %d", out[0])
	}
	if out[1] != 0 {
		t.Fatalf("expected fully uncovered cell, got %d", out[1])
	}
}

func TestHorizontalEdgesDiscarded(t *testing.T) {
	sc := NewScanConverter(10, 10, NonZero)
	sc.Move(pt(2, 5))
	sc.Line(pt(8, 5)) // purely horizontal, must not create an edge
	sc.Close()
	if len(sc.table[5]) != 0 {
		t.Fatalf("expected horizontal segment to produce no edges, got %d", len(sc.table[5]))
	}
}
