package render

import (
	"glyphforge.dev/internal/cachekey"
	"glyphforge.dev/internal/lru"
	"glyphforge.dev/rasterize"
)

// glyphKey fingerprints a rasterization request: face identity, glyph id,
// quantized size, and quantized variation tuple (spec.md §4.7 "Glyph
// bitmap cache consult").
type glyphKey struct {
	faceIdentity string
	gid          uint32
	sizeQ        int64
	variationsQ  string
}

// GlyphCache memoizes rasterized glyph bitmaps, the third of spec.md §3's
// three named caches (alongside the font instance cache and the shaped-run
// cache).
type GlyphCache struct {
	entries *lru.Cache[glyphKey, rasterize.Bitmap]
}

// NewGlyphCache constructs a glyph bitmap cache bounded to maxEntries.
func NewGlyphCache(maxEntries int) *GlyphCache {
	return &GlyphCache{entries: lru.New[glyphKey, rasterize.Bitmap](maxEntries)}
}

func (c *GlyphCache) key(faceIdentity string, gid uint32, ppem float64, variations map[[4]byte]float64) glyphKey {
	return glyphKey{
		faceIdentity: faceIdentity,
		gid:          gid,
		sizeQ:        cachekey.Quantize(ppem),
		variationsQ:  cachekey.QuantizeVariations(variations),
	}
}

// Rasterize returns the cached bitmap for this request, rasterizing and
// inserting on a miss.
func (c *GlyphCache) Rasterize(faceIdentity string, gid uint32, outline rasterize.Outline, ppem float64, variations map[[4]byte]float64, fillRule rasterize.FillRule) (rasterize.Bitmap, error) {
	key := c.key(faceIdentity, gid, ppem, variations)
	if bmp, ok := c.entries.Get(key); ok {
		return bmp, nil
	}
	bmp, err := rasterize.RasterizeOutline(outline, ppem, fillRule)
	if err != nil {
		return rasterize.Bitmap{}, err
	}
	c.entries.Put(key, bmp)
	return bmp, nil
}
