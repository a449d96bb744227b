// Package gui is the rendering and resource core of the game client GUI:
// reference-counted images with software or OpenGL storage, a TrueType font
// with a bounded text-surface cache, a batched quad renderer with a clip
// stack, and text layout for plain and rich (colour and hyperlink) text.
package gui

import "image/color"

// Rect is an integer pixel rectangle.
type Rect struct {
	X, Y int // Top-left position
	W, H int // Width and height
}

// Empty returns true if the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of two rectangles. Non-overlapping
// rectangles yield a rectangle with zero width or height.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.X+r.W, other.X+other.W)
	y2 := min(r.Y+r.H, other.Y+other.H)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Vertex represents a vertex for textured quad rendering.
// Memory layout matches OpenGL vertex attribute expectations.
type Vertex struct {
	Pos      [2]float32 // Position (x, y)
	TexCoord [2]float32 // Texture coordinates (u, v)
	Color    uint32     // RGBA packed color
}

// DrawCmd represents a single draw command.
// Commands are split whenever the texture or clip rectangle changes.
type DrawCmd struct {
	ElemCount    uint32 // Number of indices to draw
	ClipRect     Rect   // Scissor rectangle in window coordinates (top-left origin)
	TextureID    uint32 // OpenGL texture ID (0 = untextured)
	VertexOffset uint32 // Offset into vertex buffer
	IndexOffset  uint32 // Offset into index buffer
}

// Color is a non-premultiplied 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Color constants.
var (
	ColorWhite       = Color{255, 255, 255, 255}
	ColorBlack       = Color{0, 0, 0, 255}
	ColorRed         = Color{255, 0, 0, 255}
	ColorGreen       = Color{0, 255, 0, 255}
	ColorBlue        = Color{0, 0, 255, 255}
	ColorYellow      = Color{255, 255, 0, 255}
	ColorGray        = Color{128, 128, 128, 255}
	ColorTransparent = Color{}
)

// RGB creates an opaque color from a 0xRRGGBB value.
func RGB(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Opaque returns the color with alpha pinned to 255.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// Packed returns the color packed as 0xAABBGGRR for vertex upload.
func (c Color) Packed() uint32 {
	return uint32(c.A)<<24 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}

// WithAlpha returns the color with its alpha multiplied by a (0..1).
func (c Color) WithAlpha(a float32) Color {
	c.A = uint8(clampf(float32(c.A)*a+0.5, 0, 255))
	return c
}

// NRGBA converts to the image/color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
