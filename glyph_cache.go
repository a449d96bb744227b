package gui

import (
	"fmt"

	"github.com/hashicorp/golang-lru/simplelru"
)

// DefaultGlyphCacheSize is the number of rendered strings a font keeps.
const DefaultGlyphCacheSize = 256

// glyphKey identifies a rendered string. The color is always opaque;
// alpha is applied at draw time.
type glyphKey struct {
	text  string
	color Color
}

// GlyphCacheStats counts cache activity since creation.
type GlyphCacheStats struct {
	Hits           int
	Misses         int
	Evictions      int
	Rasterizations int
}

// GlyphCache is a bounded least-recently-used cache of rendered text
// surfaces keyed by (text, color). It owns every image it creates and
// releases it on eviction.
type GlyphCache struct {
	lru       *simplelru.LRU
	raster    Rasterizer
	loader    *Loader
	lastColor map[string]Color // most recent color each cached text was rendered in
	stats     GlyphCacheStats
	purging   bool
}

// NewGlyphCache creates a cache rendering through r and uploading through
// loader. Non-positive capacities use DefaultGlyphCacheSize.
func NewGlyphCache(r Rasterizer, loader *Loader, capacity int) *GlyphCache {
	if capacity <= 0 {
		capacity = DefaultGlyphCacheSize
	}
	c := &GlyphCache{
		raster:    r,
		loader:    loader,
		lastColor: make(map[string]Color, capacity),
	}
	// NewLRU only fails for non-positive sizes.
	c.lru, _ = simplelru.NewLRU(capacity, c.onEvict)
	return c
}

func (c *GlyphCache) onEvict(k, v interface{}) {
	key := k.(glyphKey)
	if last, ok := c.lastColor[key.text]; ok && last == key.color {
		delete(c.lastColor, key.text)
	}
	v.(*Image).DecRef()
	if c.purging {
		return
	}
	c.stats.Evictions++
	if guiVerbose() {
		Logger().Debug("glyph cache eviction", "text", key.text)
	}
}

// Get returns the rendered image of text in color c, rasterizing it on a
// miss. The returned image belongs to the cache and is only valid until
// the entry is evicted.
func (c *GlyphCache) Get(text string, col Color) (*Image, error) {
	key := glyphKey{text: text, color: col.Opaque()}
	if v, ok := c.lru.Get(key); ok {
		c.stats.Hits++
		c.lastColor[text] = key.color
		return v.(*Image), nil
	}
	c.stats.Misses++

	s, err := c.raster.Rasterize(text, key.color)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRasterization, text, err)
	}
	c.stats.Rasterizations++
	img, err := c.loader.FromSurface(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRasterization, text, err)
	}
	c.lru.Add(key, img)
	c.lastColor[text] = key.color
	return img, nil
}

// Width returns the width of text if it is cached in any color, touching
// the entry.
func (c *GlyphCache) Width(text string) (int, bool) {
	col, ok := c.lastColor[text]
	if !ok {
		return 0, false
	}
	v, ok := c.lru.Get(glyphKey{text: text, color: col})
	if !ok {
		return 0, false
	}
	return v.(*Image).Width(), true
}

// Contains reports whether (text, color) is cached without touching it.
func (c *GlyphCache) Contains(text string, col Color) bool {
	return c.lru.Contains(glyphKey{text: text, color: col.Opaque()})
}

// Oldest returns the text of the least recently used entry.
func (c *GlyphCache) Oldest() (string, bool) {
	k, _, ok := c.lru.GetOldest()
	if !ok {
		return "", false
	}
	return k.(glyphKey).text, true
}

// Len returns the number of cached entries.
func (c *GlyphCache) Len() int {
	return c.lru.Len()
}

// Stats returns the activity counters.
func (c *GlyphCache) Stats() GlyphCacheStats {
	return c.stats
}

// Purge releases every cached image.
func (c *GlyphCache) Purge() {
	c.purging = true
	c.lru.Purge()
	c.purging = false
}
