package gui

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Font measures and draws single-line text.
// Layout code only needs Width and Height; widgets draw through DrawText.
type Font interface {
	// Width returns the rendered width of text in pixels.
	Width(text string) int
	// Height returns the line height in pixels.
	Height() int
	// DrawText draws text with its top-left corner at (x, y).
	DrawText(g Graphics, text string, x, y int, c Color) error
}

// Rasterizer renders a string into a new RGBA8888 surface.
type Rasterizer interface {
	Rasterize(text string, c Color) (*Surface, error)
	Measure(text string) int
	Height() int
}

// FaceRasterizer renders text with any x/image font face.
type FaceRasterizer struct {
	face   font.Face
	ascent int
	height int
}

// NewFaceRasterizer wraps a font face.
func NewFaceRasterizer(face font.Face) *FaceRasterizer {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := m.Height.Ceil()
	if d := ascent + m.Descent.Ceil(); d > height {
		height = d
	}
	return &FaceRasterizer{face: face, ascent: ascent, height: height}
}

// Measure implements Rasterizer.
func (r *FaceRasterizer) Measure(text string) int {
	return font.MeasureString(r.face, text).Ceil()
}

// Height implements Rasterizer.
func (r *FaceRasterizer) Height() int {
	return r.height
}

// Rasterize implements Rasterizer.
func (r *FaceRasterizer) Rasterize(text string, c Color) (*Surface, error) {
	w := r.Measure(text)
	if w <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("text %q has no extent", text)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, r.height))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.NRGBA()),
		Face: r.face,
		Dot:  fixed.P(0, r.ascent),
	}
	d.DrawString(text)
	return SurfaceFromImage(dst), nil
}

// ParseTrueType parses TrueType font data into a face of the given pixel size.
func ParseTrueType(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse truetype font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// TrueTypeFont draws text through a GlyphCache so repeated strings are
// rasterized once. Alpha is applied per draw and never cached.
type TrueTypeFont struct {
	raster Rasterizer
	cache  *GlyphCache
}

// NewTrueTypeFont parses ttf at size pixels. cacheSize bounds the number of
// cached strings; non-positive values use DefaultGlyphCacheSize.
func NewTrueTypeFont(ttf []byte, size float64, loader *Loader, cacheSize int) (*TrueTypeFont, error) {
	face, err := ParseTrueType(ttf, size)
	if err != nil {
		return nil, err
	}
	return NewRasterFont(NewFaceRasterizer(face), loader, cacheSize), nil
}

// DefaultTrueTypeFont returns the Go Regular font at size pixels.
func DefaultTrueTypeFont(size float64, loader *Loader, cacheSize int) (*TrueTypeFont, error) {
	return NewTrueTypeFont(goregular.TTF, size, loader, cacheSize)
}

// FixedFont returns a font using the built-in 7x13 bitmap face. It needs no
// font file and is used as a fallback.
func FixedFont(loader *Loader, cacheSize int) *TrueTypeFont {
	return NewRasterFont(NewFaceRasterizer(basicfont.Face7x13), loader, cacheSize)
}

// NewRasterFont builds a cached font from any rasterizer.
func NewRasterFont(r Rasterizer, loader *Loader, cacheSize int) *TrueTypeFont {
	return &TrueTypeFont{raster: r, cache: NewGlyphCache(r, loader, cacheSize)}
}

// Cache returns the font's glyph cache.
func (f *TrueTypeFont) Cache() *GlyphCache {
	return f.cache
}

// Width implements Font. Cached strings report their image width.
func (f *TrueTypeFont) Width(text string) int {
	if text == "" {
		return 0
	}
	if w, ok := f.cache.Width(text); ok {
		return w
	}
	return f.raster.Measure(text)
}

// Height implements Font.
func (f *TrueTypeFont) Height() int {
	return f.raster.Height()
}

// DrawText implements Font. A returned error wraps ErrRasterization and is
// not recoverable.
func (f *TrueTypeFont) DrawText(g Graphics, text string, x, y int, c Color) error {
	if text == "" || c.A == 0 {
		return nil
	}
	img, err := f.cache.Get(text, c)
	if err != nil {
		return err
	}
	img.SetAlpha(float32(c.A) / 255)
	g.DrawImage(img, 0, 0, x, y, img.Width(), img.Height())
	return nil
}

// Release frees every cached image.
func (f *TrueTypeFont) Release() {
	f.cache.Purge()
}
