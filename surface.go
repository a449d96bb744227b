package gui

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// PixelFormat describes how a color is packed into a pixel word:
// per-channel mask, shift and precision loss, like an SDL pixel format.
// A zero AMask means the format carries no alpha channel.
type PixelFormat struct {
	Name          string
	BytesPerPixel int

	RMask, GMask, BMask, AMask     uint32
	RShift, GShift, BShift, AShift uint8
	RLoss, GLoss, BLoss, ALoss     uint8
}

// Predefined formats. Words are stored little-endian, so RGBA8888 has the
// same byte order as image.NRGBA.
var (
	// FormatRGBA8888 is the canonical 32-bit alpha-aware format.
	FormatRGBA8888 = &PixelFormat{
		Name: "RGBA8888", BytesPerPixel: 4,
		RMask: 0x000000FF, GMask: 0x0000FF00, BMask: 0x00FF0000, AMask: 0xFF000000,
		RShift: 0, GShift: 8, BShift: 16, AShift: 24,
	}

	// FormatXRGB8888 is the opaque 32-bit display format.
	FormatXRGB8888 = &PixelFormat{
		Name: "XRGB8888", BytesPerPixel: 4,
		RMask: 0x000000FF, GMask: 0x0000FF00, BMask: 0x00FF0000,
		RShift: 0, GShift: 8, BShift: 16,
	}

	// FormatRGB565 is a 16-bit opaque format.
	FormatRGB565 = &PixelFormat{
		Name: "RGB565", BytesPerPixel: 2,
		RMask: 0xF800, GMask: 0x07E0, BMask: 0x001F,
		RShift: 11, GShift: 5, BShift: 0,
		RLoss: 3, GLoss: 2, BLoss: 3,
	}
)

// HasAlpha reports whether the format stores per-pixel alpha.
func (f *PixelFormat) HasAlpha() bool {
	return f.AMask != 0
}

// Pack converts a color to a pixel word. Alpha is dropped for opaque formats.
func (f *PixelFormat) Pack(c color.NRGBA) uint32 {
	v := uint32(c.R>>f.RLoss)<<f.RShift |
		uint32(c.G>>f.GLoss)<<f.GShift |
		uint32(c.B>>f.BLoss)<<f.BShift
	if f.AMask != 0 {
		v |= uint32(c.A>>f.ALoss) << f.AShift
	}
	return v
}

// Unpack converts a pixel word to a color. Opaque formats report alpha 255.
func (f *PixelFormat) Unpack(v uint32) color.NRGBA {
	c := color.NRGBA{
		R: expand(v, f.RMask, f.RShift, f.RLoss),
		G: expand(v, f.GMask, f.GShift, f.GLoss),
		B: expand(v, f.BMask, f.BShift, f.BLoss),
		A: 255,
	}
	if f.AMask != 0 {
		c.A = expand(v, f.AMask, f.AShift, f.ALoss)
	}
	return c
}

// expand extracts a channel and widens it back to 8 bits, replicating the
// high bits into the lost low bits so full intensity stays 255.
func expand(v, mask uint32, shift, loss uint8) uint8 {
	x := (v & mask) >> shift
	if loss == 0 {
		return uint8(x)
	}
	bits := 8 - loss
	return uint8(x<<loss | x>>(bits-loss))
}

// Surface is an owned 2D pixel buffer in a known PixelFormat.
//
// storedAlpha, when present, holds the alpha of every pixel as it was when
// the surface was loaded; ScaleAlpha derives the live alpha from it and
// never overwrites it.
type Surface struct {
	W, H   int
	Format *PixelFormat
	Pix    []byte
	Stride int

	// SurfaceAlpha is the uniform alpha of formats without an alpha channel.
	SurfaceAlpha uint8

	storedAlpha []uint8
}

// NewSurface allocates a zeroed surface. Opaque formats start with
// SurfaceAlpha 255.
func NewSurface(w, h int, format *PixelFormat) *Surface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := w * format.BytesPerPixel
	return &Surface{
		W:            w,
		H:            h,
		Format:       format,
		Pix:          make([]byte, stride*h),
		Stride:       stride,
		SurfaceAlpha: 255,
	}
}

// SurfaceFromImage copies any decoded image into a new RGBA8888 surface.
func SurfaceFromImage(src image.Image) *Surface {
	b := src.Bounds()
	s := NewSurface(b.Dx(), b.Dy(), FormatRGBA8888)
	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := 0; y < s.H; y++ {
			off := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
			copy(s.Pix[y*s.Stride:(y+1)*s.Stride], nrgba.Pix[off:off+s.W*4])
		}
		return s
	}
	dst := &image.NRGBA{Pix: s.Pix, Stride: s.Stride, Rect: image.Rect(0, 0, s.W, s.H)}
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return s
}

func (s *Surface) word(x, y int) uint32 {
	i := y*s.Stride + x*s.Format.BytesPerPixel
	var v uint32
	for n := s.Format.BytesPerPixel - 1; n >= 0; n-- {
		v = v<<8 | uint32(s.Pix[i+n])
	}
	return v
}

func (s *Surface) setWord(x, y int, v uint32) {
	i := y*s.Stride + x*s.Format.BytesPerPixel
	for n := 0; n < s.Format.BytesPerPixel; n++ {
		s.Pix[i+n] = uint8(v >> (8 * n))
	}
}

// PixelAt returns the color at (x, y). Out-of-range reads return transparent.
func (s *Surface) PixelAt(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return color.NRGBA{}
	}
	c := s.Format.Unpack(s.word(x, y))
	if !s.Format.HasAlpha() {
		c.A = s.SurfaceAlpha
	}
	return c
}

// SetPixel writes a color at (x, y). Out-of-range writes are ignored.
func (s *Surface) SetPixel(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return
	}
	s.setWord(x, y, s.Format.Pack(c))
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color { return s.PixelAt(x, y) }

// Set implements draw.Image.
func (s *Surface) Set(x, y int, c color.Color) {
	s.SetPixel(x, y, color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Clone returns a deep copy, including the alpha snapshot.
func (s *Surface) Clone() *Surface {
	c := *s
	c.Pix = append([]byte(nil), s.Pix...)
	if s.storedAlpha != nil {
		c.storedAlpha = append([]uint8(nil), s.storedAlpha...)
	}
	return &c
}

// Convert returns a copy of the surface in another format.
func (s *Surface) Convert(format *PixelFormat) *Surface {
	if format == s.Format {
		return s.Clone()
	}
	out := NewSurface(s.W, s.H, format)
	out.SurfaceAlpha = s.SurfaceAlpha
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			out.setWord(x, y, format.Pack(s.Format.Unpack(s.word(x, y))))
		}
	}
	if s.storedAlpha != nil {
		out.storedAlpha = append([]uint8(nil), s.storedAlpha...)
	}
	return out
}

// HasTranslucency reports whether any pixel's alpha differs from opaque.
func (s *Surface) HasTranslucency() bool {
	if !s.Format.HasAlpha() {
		return s.SurfaceAlpha != 255
	}
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			if s.Format.Unpack(s.word(x, y)).A != 255 {
				return true
			}
		}
	}
	return false
}

// SnapshotAlpha records the current per-pixel alpha as the load-time alpha.
// Opaque formats have no snapshot.
func (s *Surface) SnapshotAlpha() {
	if !s.Format.HasAlpha() {
		s.storedAlpha = nil
		return
	}
	s.storedAlpha = make([]uint8, s.W*s.H)
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			s.storedAlpha[y*s.W+x] = s.Format.Unpack(s.word(x, y)).A
		}
	}
}

// StoredAlpha returns the load-time alpha of pixel (x, y) and whether a
// snapshot exists.
func (s *Surface) StoredAlpha(x, y int) (uint8, bool) {
	if s.storedAlpha == nil || x < 0 || y < 0 || x >= s.W || y >= s.H {
		return 0, false
	}
	return s.storedAlpha[y*s.W+x], true
}

// ScaleAlpha sets every pixel's alpha to its stored alpha times mult,
// rounded to 8 bits. RGB bits are left untouched. Formats without an alpha
// channel scale SurfaceAlpha instead.
func (s *Surface) ScaleAlpha(mult float32) {
	mult = clampf(mult, 0, 1)
	if !s.Format.HasAlpha() {
		s.SurfaceAlpha = uint8(255*mult + 0.5)
		return
	}
	if s.storedAlpha == nil {
		s.SnapshotAlpha()
	}
	f := s.Format
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			a := uint8(float32(s.storedAlpha[y*s.W+x])*mult + 0.5)
			w := s.word(x, y)&^f.AMask | uint32(a>>f.ALoss)<<f.AShift
			s.setWord(x, y, w)
		}
	}
}
