package gui

// Graphics is the drawing surface widgets and fonts render through.
// BatchGraphics implements it on top of a GPU Renderer and SoftwareGraphics
// on top of an in-memory RGBA target.
type Graphics interface {
	// PushClipArea pushes an area relative to the current clip origin.
	// Returns false if the effective clip is empty.
	PushClipArea(area Rect) bool
	// PopClipArea restores the previous clip area. Popping the base is a no-op.
	PopClipArea()
	// ClipArea returns the current effective clip.
	ClipArea() ClipRect

	SetColor(c Color)
	Color() Color

	// DrawImage draws the (srcX, srcY, w, h) region of img at (dstX, dstY).
	DrawImage(img *Image, srcX, srcY, dstX, dstY, w, h int)
	// DrawImagePattern tiles img over the (x, y, w, h) area.
	DrawImagePattern(img *Image, x, y, w, h int)

	FillRectangle(r Rect)
	DrawRectangle(r Rect)
	DrawLine(x1, y1, x2, y2 int)
}

// Renderer executes flushed draw lists on the GPU.
type Renderer interface {
	Render(dl *DrawList) error
	Resize(width, height int)
}

// DefaultQuadCapacity is the number of quads batched before a flush.
const DefaultQuadCapacity = 500

// MaxQuadCapacity is the largest quad capacity whose vertices can all be
// addressed by the 16-bit indices of a single command.
const MaxQuadCapacity = 16383

// GraphicsOption configures a BatchGraphics.
type GraphicsOption func(*BatchGraphics)

// WithQuadCapacity sets how many quads are batched before a flush.
func WithQuadCapacity(n int) GraphicsOption {
	return func(g *BatchGraphics) {
		if n > 0 {
			g.quadCapacity = min(n, MaxQuadCapacity)
		}
	}
}

// BatchGraphics accumulates textured quads into a DrawList and hands it to
// the Renderer whenever the quad capacity is reached and at the end of the
// frame. Clip areas become per-command scissor rectangles.
type BatchGraphics struct {
	renderer     Renderer
	dl           *DrawList
	clip         ClipStack
	color        Color
	quadCapacity int
	width        int
	height       int
	flushes      int
	err          error

	// held are the images referenced by queued quads. They keep their
	// textures alive until the draw list holding them is rendered.
	held map[*Image]struct{}
}

// NewBatchGraphics creates a batching graphics context for renderer.
func NewBatchGraphics(renderer Renderer, opts ...GraphicsOption) *BatchGraphics {
	g := &BatchGraphics{
		renderer:     renderer,
		color:        ColorWhite,
		quadCapacity: DefaultQuadCapacity,
		held:         make(map[*Image]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Begin starts a frame covering a width x height screen.
func (g *BatchGraphics) Begin(width, height int) {
	if g.width != width || g.height != height {
		g.width, g.height = width, height
		g.renderer.Resize(width, height)
	}
	g.dl = AcquireDrawList()
	g.clip.Reset(Rect{W: width, H: height})
	g.dl.SetClipRect(g.clip.Top().Rect)
	g.flushes = 0
	g.err = nil
}

// End flushes the remaining quads and returns the first render error of
// the frame, if any.
func (g *BatchGraphics) End() error {
	if g.dl == nil {
		return nil
	}
	g.flush()
	ReleaseDrawList(g.dl)
	g.dl = nil
	return g.err
}

// Flushes returns the number of draw lists handed to the renderer this frame.
func (g *BatchGraphics) Flushes() int {
	return g.flushes
}

func (g *BatchGraphics) flush() {
	if g.dl.QuadCount() == 0 {
		g.releaseHeld()
		return
	}
	g.flushes++
	if err := g.renderer.Render(g.dl); err != nil && g.err == nil {
		g.err = err
	}
	g.dl.Clear()
	g.dl.SetClipRect(g.clip.Top().Rect)
	g.releaseHeld()
}

// hold references img until the next flush.
func (g *BatchGraphics) hold(img *Image) {
	if _, ok := g.held[img]; ok {
		return
	}
	img.IncRef()
	g.held[img] = struct{}{}
}

func (g *BatchGraphics) releaseHeld() {
	for img := range g.held {
		img.DecRef()
	}
	clear(g.held)
}

func (g *BatchGraphics) quadAdded() {
	if g.dl.QuadCount() >= g.quadCapacity {
		g.flush()
	}
}

// PushClipArea implements Graphics.
func (g *BatchGraphics) PushClipArea(area Rect) bool {
	ok := g.clip.Push(area)
	if g.dl != nil {
		g.dl.SetClipRect(g.clip.Top().Rect)
	}
	return ok
}

// PopClipArea implements Graphics.
func (g *BatchGraphics) PopClipArea() {
	g.clip.Pop()
	if g.dl != nil {
		g.dl.SetClipRect(g.clip.Top().Rect)
	}
}

// ClipArea implements Graphics.
func (g *BatchGraphics) ClipArea() ClipRect {
	return g.clip.Top()
}

// SetColor implements Graphics.
func (g *BatchGraphics) SetColor(c Color) {
	g.color = c
}

// Color implements Graphics.
func (g *BatchGraphics) Color() Color {
	return g.color
}

// DrawImage implements Graphics. Images without texture storage are skipped.
// The source rectangle is cut to the image's bounds.
func (g *BatchGraphics) DrawImage(img *Image, srcX, srcY, dstX, dstY, w, h int) {
	if img == nil || g.dl == nil || img.Refs() <= 0 || srcX < 0 || srcY < 0 {
		return
	}
	w = min(w, img.Width()-srcX)
	h = min(h, img.Height()-srcY)
	if w <= 0 || h <= 0 {
		return
	}
	ts, ok := img.Storage().(TextureStorage)
	if !ok {
		if guiVerbose() {
			Logger().Debug("skipping image without texture", "w", img.Width(), "h", img.Height())
		}
		return
	}
	tex, texW, texH := ts.Texture()
	color := ColorWhite.WithAlpha(img.drawAlpha()).Packed()
	g.hold(img)
	g.dl.SetTexture(tex)
	g.addImageQuad(img, texW, texH, srcX, srcY, dstX, dstY, w, h, color)
}

// addImageQuad maps a pixel-space source rectangle to texture space using
// the allocated texture size, which may be larger than the image.
func (g *BatchGraphics) addImageQuad(img *Image, texW, texH, srcX, srcY, dstX, dstY, w, h int, color uint32) {
	top := g.clip.Top()
	b := img.Bounds()
	sx := float32(b.X + srcX)
	sy := float32(b.Y + srcY)
	x0 := float32(dstX + top.XOffset)
	y0 := float32(dstY + top.YOffset)
	tw, th := float32(texW), float32(texH)
	g.dl.AddQuad(
		x0, y0, x0+float32(w), y0+float32(h),
		sx/tw, sy/th, (sx+float32(w))/tw, (sy+float32(h))/th,
		color,
	)
	g.quadAdded()
}

// DrawImagePattern implements Graphics. Tiles at the right and bottom edges
// are cut to the remaining width and height.
func (g *BatchGraphics) DrawImagePattern(img *Image, x, y, w, h int) {
	if img == nil || g.dl == nil || img.Refs() <= 0 || w <= 0 || h <= 0 {
		return
	}
	iw, ih := img.Width(), img.Height()
	if iw <= 0 || ih <= 0 {
		return
	}
	ts, ok := img.Storage().(TextureStorage)
	if !ok {
		return
	}
	tex, texW, texH := ts.Texture()
	color := ColorWhite.WithAlpha(img.drawAlpha()).Packed()

	for py := 0; py < h; py += ih {
		dh := min(ih, h-py)
		for px := 0; px < w; px += iw {
			dw := min(iw, w-px)
			// A flush clears the texture memo and the held images, so
			// both are renewed per tile.
			g.hold(img)
			g.dl.SetTexture(tex)
			g.addImageQuad(img, texW, texH, 0, 0, x+px, y+py, dw, dh, color)
		}
	}
}

// FillRectangle implements Graphics.
func (g *BatchGraphics) FillRectangle(r Rect) {
	if g.dl == nil || r.Empty() {
		return
	}
	top := g.clip.Top()
	g.dl.AddRect(float32(r.X+top.XOffset), float32(r.Y+top.YOffset), float32(r.W), float32(r.H), g.color.Packed())
	g.quadAdded()
}

// DrawRectangle implements Graphics as four one-pixel edges.
func (g *BatchGraphics) DrawRectangle(r Rect) {
	if r.Empty() {
		return
	}
	g.FillRectangle(Rect{X: r.X, Y: r.Y, W: r.W, H: 1})
	g.FillRectangle(Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1})
	g.FillRectangle(Rect{X: r.X, Y: r.Y + 1, W: 1, H: r.H - 2})
	g.FillRectangle(Rect{X: r.X + r.W - 1, Y: r.Y + 1, W: 1, H: r.H - 2})
}

// DrawLine implements Graphics.
func (g *BatchGraphics) DrawLine(x1, y1, x2, y2 int) {
	if g.dl == nil {
		return
	}
	top := g.clip.Top()
	ox, oy := float32(top.XOffset), float32(top.YOffset)
	g.dl.AddLine(float32(x1)+ox+0.5, float32(y1)+oy+0.5, float32(x2)+ox+0.5, float32(y2)+oy+0.5, g.color.Packed(), 1)
	g.quadAdded()
}
