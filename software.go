package gui

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// SoftwareGraphics draws into an in-memory RGBA target. It honours the same
// clip stack semantics as BatchGraphics, clipping on the CPU.
type SoftwareGraphics struct {
	target *image.RGBA
	clip   ClipStack
	color  Color
}

// NewSoftwareGraphics creates a graphics context drawing into target.
func NewSoftwareGraphics(target *image.RGBA) *SoftwareGraphics {
	g := &SoftwareGraphics{target: target, color: ColorWhite}
	g.Begin()
	return g
}

// Target returns the image being drawn into.
func (g *SoftwareGraphics) Target() *image.RGBA {
	return g.target
}

// Begin resets the clip stack to the whole target.
func (g *SoftwareGraphics) Begin() {
	b := g.target.Bounds()
	g.clip.Reset(Rect{X: b.Min.X, Y: b.Min.Y, W: b.Dx(), H: b.Dy()})
}

// PushClipArea implements Graphics.
func (g *SoftwareGraphics) PushClipArea(area Rect) bool {
	return g.clip.Push(area)
}

// PopClipArea implements Graphics.
func (g *SoftwareGraphics) PopClipArea() {
	g.clip.Pop()
}

// ClipArea implements Graphics.
func (g *SoftwareGraphics) ClipArea() ClipRect {
	return g.clip.Top()
}

// SetColor implements Graphics.
func (g *SoftwareGraphics) SetColor(c Color) {
	g.color = c
}

// Color implements Graphics.
func (g *SoftwareGraphics) Color() Color {
	return g.color
}

// clipped translates r into screen space and clips it to the current area.
func (g *SoftwareGraphics) clipped(r Rect) (image.Rectangle, bool) {
	top := g.clip.Top()
	r.X += top.XOffset
	r.Y += top.YOffset
	c := r.Intersect(top.Rect)
	if c.Empty() {
		return image.Rectangle{}, false
	}
	return image.Rect(c.X, c.Y, c.X+c.W, c.Y+c.H), true
}

// DrawImage implements Graphics. Images without CPU pixels are skipped and
// the source rectangle is cut to the image's bounds.
func (g *SoftwareGraphics) DrawImage(img *Image, srcX, srcY, dstX, dstY, w, h int) {
	if img == nil || srcX < 0 || srcY < 0 {
		return
	}
	w = min(w, img.Width()-srcX)
	h = min(h, img.Height()-srcY)
	if w <= 0 || h <= 0 {
		return
	}
	px := img.Storage().Pixels()
	if px == nil {
		return
	}
	top := g.clip.Top()
	dr, ok := g.clipped(Rect{X: dstX, Y: dstY, W: w, H: h})
	if !ok {
		return
	}
	b := img.Bounds()
	sp := image.Pt(
		b.X+srcX+dr.Min.X-(dstX+top.XOffset),
		b.Y+srcY+dr.Min.Y-(dstY+top.YOffset),
	)
	a := img.drawAlpha()
	if a >= 1 {
		draw.Draw(g.target, dr, px, sp, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(a*255 + 0.5)})
	draw.DrawMask(g.target, dr, px, sp, mask, image.Point{}, draw.Over)
}

// DrawImagePattern implements Graphics.
func (g *SoftwareGraphics) DrawImagePattern(img *Image, x, y, w, h int) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	iw, ih := img.Width(), img.Height()
	if iw <= 0 || ih <= 0 {
		return
	}
	for py := 0; py < h; py += ih {
		dh := min(ih, h-py)
		for px := 0; px < w; px += iw {
			dw := min(iw, w-px)
			g.DrawImage(img, 0, 0, x+px, y+py, dw, dh)
		}
	}
}

// FillRectangle implements Graphics.
func (g *SoftwareGraphics) FillRectangle(r Rect) {
	dr, ok := g.clipped(r)
	if !ok || g.color.A == 0 {
		return
	}
	draw.Draw(g.target, dr, image.NewUniform(g.color.NRGBA()), image.Point{}, draw.Over)
}

// DrawRectangle implements Graphics.
func (g *SoftwareGraphics) DrawRectangle(r Rect) {
	if r.Empty() {
		return
	}
	g.FillRectangle(Rect{X: r.X, Y: r.Y, W: r.W, H: 1})
	g.FillRectangle(Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1})
	g.FillRectangle(Rect{X: r.X, Y: r.Y + 1, W: 1, H: r.H - 2})
	g.FillRectangle(Rect{X: r.X + r.W - 1, Y: r.Y + 1, W: 1, H: r.H - 2})
}

// DrawLine implements Graphics with Bresenham's algorithm.
func (g *SoftwareGraphics) DrawLine(x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		g.FillRectangle(Rect{X: x1, Y: y1, W: 1, H: 1})
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
