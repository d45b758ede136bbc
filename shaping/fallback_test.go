package shaping

import (
	"testing"

	"glyphforge.dev/font"
)

type stubFallbackShaper struct {
	out map[*font.Handle]Result
}

func (s stubFallbackShaper) Shape(run Run, handle *font.Handle, params Params) (Result, error) {
	return s.out[handle], nil
}

func TestHasNotdef(t *testing.T) {
	cases := []struct {
		name   string
		glyphs []PositionedGlyph
		want   bool
	}{
		{"empty", nil, false},
		{"no notdef", []PositionedGlyph{{GID: 1}, {GID: 2}}, false},
		{"leading notdef", []PositionedGlyph{{GID: 0}, {GID: 2}}, true},
		{"trailing notdef", []PositionedGlyph{{GID: 5}, {GID: 0}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := hasNotdef(tc.glyphs); got != tc.want {
				t.Errorf("hasNotdef(%+v) = %v, want %v", tc.glyphs, got, tc.want)
			}
		})
	}
}

func TestFallbackTableCandidatesFor(t *testing.T) {
	table := FallbackTable{
		"Arab": {{Family: "Noto Sans Arabic"}},
	}
	if got := table.CandidatesFor("Arab"); len(got) != 1 || got[0].Family != "Noto Sans Arabic" {
		t.Fatalf("unexpected candidates: %+v", got)
	}
	if got := table.CandidatesFor("Latn"); got != nil {
		t.Fatalf("expected nil candidates for unregistered script, got %+v", got)
	}
}

func TestShapeWithFallbackReturnsPrimaryHandleWhenNoNotdef(t *testing.T) {
	primary := &font.Handle{}
	shaper := stubFallbackShaper{out: map[*font.Handle]Result{
		primary: {Glyphs: []PositionedGlyph{{GID: 1}, {GID: 2}}},
	}}
	result, handle, err := ShapeWithFallback(shaper, nil, Run{Text: "hi"}, primary, Params{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle != primary {
		t.Fatalf("expected the primary handle back when no fallback was needed")
	}
	if len(result.Glyphs) != 2 {
		t.Fatalf("expected the primary result unchanged, got %+v", result)
	}
}

func TestShapeWithFallbackReturnsPrimaryOnExhaustion(t *testing.T) {
	primary := &font.Handle{}
	shaper := stubFallbackShaper{out: map[*font.Handle]Result{
		primary: {Glyphs: []PositionedGlyph{{GID: 0}}},
	}}
	table := FallbackTable{"Arab": {{Family: "unresolvable-family"}}}
	fontCache := font.NewCache(4, nil)

	result, handle, err := ShapeWithFallback(shaper, fontCache, Run{Text: "x", Script: "Arab"}, primary, Params{}, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle != primary {
		t.Fatal("expected the primary handle back once every fallback candidate fails to resolve")
	}
	if !hasNotdef(result.Glyphs) {
		t.Fatalf("expected the notdef-containing primary result, got %+v", result)
	}
}
