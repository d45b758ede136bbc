package shaping

import (
	"errors"
	"testing"

	"glyphforge.dev/font"
)

type countingShaper struct {
	calls int
	out   Result
}

func (s *countingShaper) Shape(run Run, handle *font.Handle, params Params) (Result, error) {
	s.calls++
	return s.out, nil
}

type failingShaper struct{}

func (failingShaper) Shape(run Run, handle *font.Handle, params Params) (Result, error) {
	return Result{}, errors.New("boom")
}

func TestShapeCachedHitsOnSecondCall(t *testing.T) {
	cache := NewCache(8)
	shaper := &countingShaper{out: Result{Text: "hi"}}
	run := Run{Text: "hi", Script: "Latn", Language: "en"}
	params := Params{SizePx: 16}

	r1, err := ShapeCached(cache, shaper, run, nil, "fontA", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := ShapeCached(cache, shaper, run, nil, "fontA", params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shaper.calls != 1 {
		t.Fatalf("expected shaper to be called once, got %d", shaper.calls)
	}
	if r1.Text != r2.Text {
		t.Fatalf("cached result mismatch: %+v vs %+v", r1, r2)
	}
}

func TestShapeCachedDistinguishesFontIdentity(t *testing.T) {
	cache := NewCache(8)
	shaper := &countingShaper{out: Result{Text: "hi"}}
	run := Run{Text: "hi"}
	params := Params{SizePx: 16}

	if _, err := ShapeCached(cache, shaper, run, nil, "fontA", params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ShapeCached(cache, shaper, run, nil, "fontB", params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shaper.calls != 2 {
		t.Fatalf("expected distinct font identities to miss cache, got %d calls", shaper.calls)
	}
}

func TestShapeCachedPropagatesError(t *testing.T) {
	cache := NewCache(8)
	_, err := ShapeCached(cache, failingShaper{}, Run{Text: "x"}, nil, "fontA", Params{SizePx: 12})
	if err == nil {
		t.Fatal("expected error from failing shaper")
	}
}

func TestCachingShaperHitsOnSecondCall(t *testing.T) {
	cache := NewCache(8)
	inner := &countingShaper{out: Result{Text: "hi"}}
	shaper := CachingShaper{Inner: inner, Cache: cache}
	handle := &font.Handle{}
	run := Run{Text: "hi", Script: "Latn"}
	params := Params{SizePx: 16}

	if _, err := shaper.Shape(run, handle, params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := shaper.Shape(run, handle, params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected the inner shaper to run once, got %d calls", inner.calls)
	}
}

func TestCachingShaperDistinguishesHandles(t *testing.T) {
	cache := NewCache(8)
	inner := &countingShaper{out: Result{Text: "hi"}}
	shaper := CachingShaper{Inner: inner, Cache: cache}
	run := Run{Text: "hi"}
	params := Params{SizePx: 16}

	if _, err := shaper.Shape(run, &font.Handle{}, params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := shaper.Shape(run, &font.Handle{}, params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected distinct handle pointers to miss the cache, got %d calls", inner.calls)
	}
}

func TestFeaturesKeyOrderIndependent(t *testing.T) {
	ligaTag, _ := font.ParseTag("liga")
	kernTag, _ := font.ParseTag("kern")
	a := map[font.Tag]bool{ligaTag: true, kernTag: false}
	b := map[font.Tag]bool{kernTag: false, ligaTag: true}
	if featuresKey(a) != featuresKey(b) {
		t.Fatalf("featuresKey should be order independent: %q vs %q", featuresKey(a), featuresKey(b))
	}
}
