package gui_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"

	"github.com/aethyra/gui"
)

func newCache(t *testing.T, capacity int) (*gui.GlyphCache, *countingRasterizer, *textureBackend) {
	t.Helper()
	raster := &countingRasterizer{}
	backend := &textureBackend{}
	return gui.NewGlyphCache(raster, gui.NewLoader(backend), capacity), raster, backend
}

func TestGlyphCacheHitsWithinCapacity(t *testing.T) {
	c, raster, _ := newCache(t, 4)
	texts := []string{"a", "bb", "ccc", "dddd"}

	for round := 0; round < 3; round++ {
		for _, s := range texts {
			if _, err := c.Get(s, gui.ColorWhite); err != nil {
				t.Fatalf("Get(%q): %v", s, err)
			}
		}
	}
	if raster.calls != len(texts) {
		t.Errorf("rasterized %d times, want %d", raster.calls, len(texts))
	}
	want := gui.GlyphCacheStats{Hits: 8, Misses: 4, Rasterizations: 4}
	if diff := cmp.Diff(want, c.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestGlyphCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, _, backend := newCache(t, 3)
	for _, s := range []string{"one", "two", "three"} {
		if _, err := c.Get(s, gui.ColorWhite); err != nil {
			t.Fatal(err)
		}
	}
	// Touch "one" so "two" becomes the oldest.
	if _, err := c.Get("one", gui.ColorWhite); err != nil {
		t.Fatal(err)
	}
	if oldest, _ := c.Oldest(); oldest != "two" {
		t.Fatalf("oldest = %q, want two", oldest)
	}

	if _, err := c.Get("four", gui.ColorWhite); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want capacity", c.Len())
	}
	if c.Contains("two", gui.ColorWhite) {
		t.Error("least recently used entry should be evicted")
	}
	for _, s := range []string{"one", "three", "four"} {
		if !c.Contains(s, gui.ColorWhite) {
			t.Errorf("%q should still be cached", s)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("evictions = %d, want 1", got)
	}
	if backend.released != 1 {
		t.Errorf("evicted image storage released %d times, want 1", backend.released)
	}
}

func TestGlyphCacheKeysIgnoreAlpha(t *testing.T) {
	c, raster, _ := newCache(t, 8)
	opaque, err := c.Get("hi", gui.Color{R: 10, G: 20, B: 30, A: 255})
	if err != nil {
		t.Fatal(err)
	}
	faded, err := c.Get("hi", gui.Color{R: 10, G: 20, B: 30, A: 40})
	if err != nil {
		t.Fatal(err)
	}
	if opaque != faded || raster.calls != 1 {
		t.Errorf("alpha variants should share one entry (rasterized %d times)", raster.calls)
	}
	if _, err := c.Get("hi", gui.Color{R: 11, G: 20, B: 30, A: 255}); err != nil {
		t.Fatal(err)
	}
	if raster.calls != 2 {
		t.Errorf("a different color should rasterize again")
	}
}

func TestGlyphCacheWidth(t *testing.T) {
	c, _, _ := newCache(t, 2)
	if _, ok := c.Width("abc"); ok {
		t.Error("uncached text should report no width")
	}
	if _, err := c.Get("abc", gui.ColorRed); err != nil {
		t.Fatal(err)
	}
	if w, ok := c.Width("abc"); !ok || w != 30 {
		t.Errorf("Width = %d, %v; want 30, true", w, ok)
	}

	// Width touches the entry, so "xyz" is evicted instead of "abc".
	if _, err := c.Get("xyz", gui.ColorRed); err != nil {
		t.Fatal(err)
	}
	c.Width("abc")
	if _, err := c.Get("new", gui.ColorRed); err != nil {
		t.Fatal(err)
	}
	if !c.Contains("abc", gui.ColorRed) || c.Contains("xyz", gui.ColorRed) {
		t.Error("Width should refresh the entry's recency")
	}
	if _, ok := c.Width("xyz"); ok {
		t.Error("evicted text should report no width")
	}
}

func TestGlyphCacheRasterizationFailure(t *testing.T) {
	c, raster, _ := newCache(t, 2)
	raster.fail = true
	_, err := c.Get("boom", gui.ColorWhite)
	if !errors.Is(err, gui.ErrRasterization) {
		t.Fatalf("err = %v, want ErrRasterization", err)
	}
	if c.Len() != 0 {
		t.Error("failed rasterization should not be cached")
	}
}

func TestGlyphCachePurge(t *testing.T) {
	c, _, backend := newCache(t, 8)
	for i := 0; i < 5; i++ {
		if _, err := c.Get(fmt.Sprint(i), gui.ColorWhite); err != nil {
			t.Fatal(err)
		}
	}
	c.Purge()
	if c.Len() != 0 || backend.released != 5 {
		t.Errorf("after purge: len %d, released %d", c.Len(), backend.released)
	}
	if c.Stats().Evictions != 0 {
		t.Error("purge should not count as eviction")
	}
}

func TestFaceRasterizer(t *testing.T) {
	r := gui.NewFaceRasterizer(basicfont.Face7x13)
	if got := r.Measure("abcd"); got != 28 {
		t.Errorf("Measure = %d, want 28", got)
	}
	if r.Height() < 13 {
		t.Errorf("Height = %d, want at least 13", r.Height())
	}

	s, err := r.Rasterize("A", gui.ColorRed)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if s.W != 7 || s.H != r.Height() || s.Format != gui.FormatRGBA8888 {
		t.Fatalf("surface %dx%d %s", s.W, s.H, s.Format.Name)
	}
	lit := 0
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			c := s.PixelAt(x, y)
			if c.A == 0 {
				continue
			}
			lit++
			if c.R != 255 || c.G != 0 || c.B != 0 {
				t.Fatalf("glyph pixel (%d,%d) = %v, want red", x, y, c)
			}
		}
	}
	if lit == 0 {
		t.Error("glyph has no visible pixels")
	}

	if _, err := r.Rasterize("", gui.ColorRed); err == nil {
		t.Error("empty text should not rasterize")
	}
}

func TestTrueTypeFont(t *testing.T) {
	l := gui.NewLoader(gui.NewSoftwareBackend())
	f, err := gui.DefaultTrueTypeFont(14, l, 16)
	if err != nil {
		t.Fatalf("DefaultTrueTypeFont: %v", err)
	}
	if f.Height() <= 0 {
		t.Fatalf("Height = %d", f.Height())
	}
	measured := f.Width("Hello")
	if measured <= 0 || f.Width("") != 0 {
		t.Fatalf("Width = %d", measured)
	}
	if f.Width("Hello, world") <= measured {
		t.Error("longer text should be wider")
	}

	g, _ := newSoftware(100, 40)
	if err := f.DrawText(g, "Hello", 0, 0, gui.ColorWhite); err != nil {
		t.Fatal(err)
	}
	if f.Cache().Len() != 1 {
		t.Errorf("cache len = %d after one draw", f.Cache().Len())
	}
	if w := f.Width("Hello"); w != measured {
		t.Errorf("cached width %d differs from measured %d", w, measured)
	}
	f.Release()
	if f.Cache().Len() != 0 {
		t.Error("Release should empty the cache")
	}

	if _, err := gui.NewTrueTypeFont([]byte("not a font"), 12, l, 4); err == nil {
		t.Error("invalid font data should fail to parse")
	}
}
