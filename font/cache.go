package font

import (
	"fmt"
	"log/slog"

	"glyphforge.dev/internal/lru"
)

// instanceKey identifies a parsed face: the path it came from (or a logical
// name for byte-backed sources) and the face index within a collection.
type instanceKey struct {
	source    string
	faceIndex int
}

// Cache resolves font specifications to loaded Handles, memoizing parsed
// faces so that repeated shapes of the same font never re-parse or re-map
// the file (spec.md §4.6). It is the first of the three caches spec.md §3
// describes; the other two (shaped runs, rasterized glyphs) live alongside
// the components that produce them.
type Cache struct {
	faces *lru.Cache[instanceKey, *Handle]
	log   *slog.Logger
}

// NewCache constructs an instance cache bounded to maxEntries parsed faces.
func NewCache(maxEntries int, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	faces := lru.New[instanceKey, *Handle](maxEntries)
	faces.OnEvict(func(_ instanceKey, h *Handle) {
		h.Release()
	})
	return &Cache{faces: faces, log: log}
}

// Resolve returns the Handle for spec's source, loading and caching it on
// first use. The returned Handle is shared; callers must not Release it
// themselves (the cache owns the canonical reference and releases it only
// on eviction) — callers needing an independent lifetime should call
// Clone().
func (c *Cache) Resolve(src Source) (*Handle, error) {
	key := instanceKey{source: src.cacheKey(), faceIndex: src.FaceIndex}
	if h, ok := c.faces.Get(key); ok {
		return h, nil
	}
	h, err := Load(src)
	if err != nil {
		return nil, err
	}
	c.faces.Put(key, h)
	return h, nil
}

func (s Source) cacheKey() string {
	switch {
	case len(s.Bytes) > 0:
		return fmt.Sprintf("bytes:%s:%d", s.Name, len(s.Bytes))
	case s.Path != "":
		return "path:" + s.Path
	default:
		return "family:" + s.Family
	}
}

// Stats reports cumulative hit/miss/eviction counts for the face cache.
func (c *Cache) Stats() (hits, misses, evictions int64) {
	return c.faces.Stats()
}
