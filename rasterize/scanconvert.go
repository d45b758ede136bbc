package rasterize

import (
	"math"

	"glyphforge.dev/fixedmath"
)

// FillRule selects how the scan converter's winding counter maps to
// inside/outside (spec.md §4.2).
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) inside(winding int) bool {
	if r == EvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// edge is one line segment crossing at least one scanline row, stored with
// its lower-Y endpoint first (spec.md §4.2 "Edge").
type edge struct {
	x       fixedmath.Int26_6 // current X, at the center of the row it's active on
	dxdy    fixedmath.Int26_6 // increment per scanline row
	winding int               // +1 if the original segment was Y-increasing, -1 otherwise
	yStart  int               // first active scanline row, inclusive
	yEnd    int               // last active scanline row, inclusive
}

// ScanConverter rasterizes a path built from Move/Line/Close calls into a
// per-pixel coverage grid at the resolution it was constructed with. It
// owns an edge table indexed by starting row and an active edge list,
// matching the classical algorithm spec.md §4.2 describes.
type ScanConverter struct {
	width, height int
	fillRule      FillRule
	table         [][]edge

	pen, contourStart fixedmath.Point26_6
	hasPen            bool
}

// NewScanConverter constructs a scan converter for a width×height pixel
// grid (already at the caller's chosen supersample resolution).
func NewScanConverter(width, height int, fillRule FillRule) *ScanConverter {
	return &ScanConverter{
		width:    width,
		height:   height,
		fillRule: fillRule,
		table:    make([][]edge, height),
	}
}

// Move starts a new contour at p, implicitly closing any contour already in
// progress (an unclosed contour is closed with a straight line back to its
// start, matching how font outlines are always implicitly closed).
func (s *ScanConverter) Move(p fixedmath.Point26_6) {
	s.Close()
	s.pen = p
	s.contourStart = p
	s.hasPen = true
}

// Line adds a straight edge from the current pen position to p.
func (s *ScanConverter) Line(p fixedmath.Point26_6) {
	if s.hasPen {
		s.addEdge(s.pen, p)
	}
	s.pen = p
	s.hasPen = true
}

// Close adds a straight edge back to the current contour's start point, if
// the pen has moved since Move.
func (s *ScanConverter) Close() {
	if s.hasPen && s.pen != s.contourStart {
		s.addEdge(s.pen, s.contourStart)
		s.pen = s.contourStart
	}
}

// addEdge discards horizontal segments (spec.md §4.2) and otherwise records
// one edge per scanline row it spans, normalized to store its lower-Y
// endpoint first.
func (s *ScanConverter) addEdge(p0, p1 fixedmath.Point26_6) {
	y0 := fixedmath.ToFloat(p0.Y)
	y1 := fixedmath.ToFloat(p1.Y)
	if y0 == y1 {
		return
	}
	x0 := fixedmath.ToFloat(p0.X)
	x1 := fixedmath.ToFloat(p1.X)
	winding := 1
	if y1 < y0 {
		y0, y1 = y1, y0
		x0, x1 = x1, x0
		winding = -1
	}
	yStart := int(math.Ceil(y0 - 0.5))
	if yStart < 0 {
		yStart = 0
	}
	yEnd := int(math.Ceil(y1-0.5)) - 1
	if yEnd >= s.height {
		yEnd = s.height - 1
	}
	if yStart > yEnd {
		return
	}
	dxdy := (x1 - x0) / (y1 - y0)
	xAtStart := x0 + (float64(yStart)+0.5-y0)*dxdy
	s.table[yStart] = append(s.table[yStart], edge{
		x:       fixedmath.FromFloat(xAtStart),
		dxdy:    fixedmath.FromFloat(dxdy),
		winding: winding,
		yStart:  yStart,
		yEnd:    yEnd,
	})
}

// Coverage runs the scanline algorithm and returns a width*height byte grid
// with 0 or 255 per pixel (this stage is a binary mask; downsampling to
// antialiased grayscale happens in Downsample).
func (s *ScanConverter) Coverage() []byte {
	cov := make([]byte, s.width*s.height)
	var active []edge
	for row := 0; row < s.height; row++ {
		active = append(active, s.table[row]...)
		kept := active[:0]
		for _, e := range active {
			if e.yEnd >= row {
				kept = append(kept, e)
			}
		}
		active = kept
		insertionSortByX(active)

		winding := 0
		inside := false
		spanStart := 0
		for _, e := range active {
			x := fixedmath.RoundNearest(e.x)
			if inside {
				fillSpan(cov, row, spanStart, x, s.width)
			}
			winding += e.winding
			newInside := s.fillRule.inside(winding)
			if newInside && !inside {
				spanStart = x
			}
			inside = newInside
		}

		for i := range active {
			active[i].x += active[i].dxdy
		}
	}
	return cov
}

func fillSpan(cov []byte, row, from, to, width int) {
	if from < 0 {
		from = 0
	}
	if to > width {
		to = width
	}
	if from >= to {
		return
	}
	base := row * width
	for x := from; x < to; x++ {
		cov[base+x] = 255
	}
}

// insertionSortByX sorts active in place by current X. The active list is
// mostly sorted between consecutive rows, so insertion sort is the
// classical choice (spec.md §4.2 step 3).
func insertionSortByX(active []edge) {
	for i := 1; i < len(active); i++ {
		e := active[i]
		j := i - 1
		for j >= 0 && active[j].x > e.x {
			active[j+1] = active[j]
			j--
		}
		active[j+1] = e
	}
}

// Downsample box-filters a supersampled binary coverage grid down by
// factor in each axis, producing one grayscale byte per output pixel
// (spec.md §4.2 "Coverage output").
func Downsample(cov []byte, width, height, factor int) (out []byte, outW, outH int) {
	if factor <= 1 {
		return cov, width, height
	}
	outW = width / factor
	outH = height / factor
	out = make([]byte, outW*outH)
	cellArea := factor * factor
	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			var sum int
			for dy := 0; dy < factor; dy++ {
				srcY := oy*factor + dy
				base := srcY * width
				for dx := 0; dx < factor; dx++ {
					sum += int(cov[base+ox*factor+dx])
				}
			}
			out[oy*outW+ox] = byte(sum / cellArea)
		}
	}
	return out, outW, outH
}
