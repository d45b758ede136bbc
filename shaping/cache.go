package shaping

import (
	"fmt"

	"glyphforge.dev/font"
	"glyphforge.dev/internal/cachekey"
	"glyphforge.dev/internal/lru"
)

// resultKey fingerprints a shaping request: text, font identity, size,
// language, script, feature list, and variation tuple (spec.md §3 "Caches",
// the shaped-run store).
type resultKey struct {
	text       string
	fontKey    string
	sizeQ      int64
	language   string
	script     string
	features   string
	variations string
}

// Cache memoizes shaping results. Shaping or rasterizing the same inputs
// twice must yield byte-equal outputs (spec.md §8 property 6); storing the
// Result by value and never mutating it after insertion is what makes that
// true here.
type Cache struct {
	entries *lru.Cache[resultKey, Result]
}

// NewCache constructs a shaped-run cache bounded to maxEntries.
func NewCache(maxEntries int) *Cache {
	return &Cache{entries: lru.New[resultKey, Result](maxEntries)}
}

func keyFor(run Run, fontIdentity string, params Params) resultKey {
	return resultKey{
		text:       run.Text,
		fontKey:    fontIdentity,
		sizeQ:      cachekey.Quantize(params.SizePx),
		language:   run.Language,
		script:     run.Script,
		features:   featuresKey(params.Features),
		variations: cachekey.QuantizeVariations(toTagMap(params.Variations)),
	}
}

func toTagMap(in map[font.Tag]float64) map[[4]byte]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[[4]byte]float64, len(in))
	for k, v := range in {
		out[[4]byte(k)] = v
	}
	return out
}

func featuresKey(features map[font.Tag]bool) string {
	if len(features) == 0 {
		return ""
	}
	// Deterministic order matters for a stable cache key; tags are short
	// fixed-width strings so a simple insertion sort is plenty.
	tags := make([]string, 0, len(features))
	for tag := range features {
		tags = append(tags, tag.String())
	}
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && tags[j-1] > tags[j]; j-- {
			tags[j-1], tags[j] = tags[j], tags[j-1]
		}
	}
	out := make([]byte, 0, len(tags)*6)
	for _, tag := range tags {
		var t font.Tag
		copy(t[:], tag)
		out = append(out, tag...)
		if features[t] {
			out = append(out, '1', ',')
		} else {
			out = append(out, '0', ',')
		}
	}
	return string(out)
}

// ShapeCached shapes run through shaper, consulting and populating cache
// around the call. fontIdentity should uniquely identify the resolved font
// handle (e.g. its source path plus face index), not the font.Spec, so
// fallback substitution produces a different key.
func ShapeCached(cache *Cache, shaper Shaper, run Run, handle *font.Handle, fontIdentity string, params Params) (Result, error) {
	key := keyFor(run, fontIdentity, params)
	if r, ok := cache.entries.Get(key); ok {
		return r, nil
	}
	r, err := shaper.Shape(run, handle, params)
	if err != nil {
		return Result{}, err
	}
	cache.entries.Put(key, r)
	return r, nil
}

// CachingShaper decorates a Shaper with Cache, so every caller of the
// Shaper interface — including ShapeWithFallback, which tries several
// Handles in turn — gets cache consultation for free instead of having to
// call ShapeCached explicitly. The font Handle's own pointer identity
// stands in for fontIdentity: handles are deduplicated by font.Cache, so
// two Shape calls against the same parsed face always see the same
// pointer (spec.md §3 "Caches").
type CachingShaper struct {
	Inner Shaper
	Cache *Cache
}

// Shape implements Shaper, delegating to ShapeCached.
func (s CachingShaper) Shape(run Run, handle *font.Handle, params Params) (Result, error) {
	fontIdentity := fmt.Sprintf("%p", handle)
	return ShapeCached(s.Cache, s.Inner, run, handle, fontIdentity, params)
}

// Stats reports cumulative hit/miss/eviction counts for the shaped-run
// cache.
func (c *Cache) Stats() (hits, misses, evictions int64) {
	return c.entries.Stats()
}
