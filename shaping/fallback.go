package shaping

import "glyphforge.dev/font"

// FallbackTable maps a script tag (ISO 15924) to an ordered list of
// candidate font sources to try when the primary font cannot cover a run
// (spec.md §4.5 "Font fallback").
type FallbackTable map[string][]font.Source

// CandidatesFor returns the fallback candidates registered for script, or
// nil if none are configured.
func (t FallbackTable) CandidatesFor(script string) []font.Source {
	return t[script]
}

// hasNotdef reports whether any glyph in glyphs is the notdef glyph (id 0).
func hasNotdef(glyphs []PositionedGlyph) bool {
	for _, g := range glyphs {
		if g.GID == 0 {
			return true
		}
	}
	return false
}

// ShapeWithFallback shapes run against the primary handle; if the result
// contains notdef glyphs and the fallback table has candidates for the
// run's script, it retries with each candidate in order, keeping the first
// result with no notdef glyphs. Fallback exhaustion is not an error
// (spec.md §7): if nothing covers the run, the primary (notdef-containing)
// result is returned as-is and rendering proceeds with it. The returned
// handle is whichever font (primary or fallback candidate) actually
// produced the result, so a caller rasterizing the result extracts
// outlines from the matching glyph space rather than always the primary
// face (spec.md §8 property 5).
func ShapeWithFallback(shaper Shaper, cache *font.Cache, run Run, primary *font.Handle, params Params, table FallbackTable) (Result, *font.Handle, error) {
	result, err := shaper.Shape(run, primary, params)
	if err != nil {
		return Result{}, nil, err
	}
	if !hasNotdef(result.Glyphs) {
		return result, primary, nil
	}
	for _, candidate := range table.CandidatesFor(run.Script) {
		handle, err := cache.Resolve(candidate)
		if err != nil {
			continue
		}
		retry, err := shaper.Shape(run, handle, params)
		if err != nil {
			continue
		}
		if !hasNotdef(retry.Glyphs) {
			return retry, handle, nil
		}
	}
	return result, primary, nil
}
