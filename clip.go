package gui

// ClipRect is an effective clip rectangle in screen coordinates together
// with the translation applied to drawing inside it.
type ClipRect struct {
	Rect
	XOffset, YOffset int // Origin of the pushed area, unclipped
}

// ClipStack maintains nested clip areas. The bottom entry is the base area
// (normally the whole screen) and is never popped.
type ClipStack struct {
	stack []ClipRect
}

// Reset clears the stack and installs base as the bottom area.
func (cs *ClipStack) Reset(base Rect) {
	cs.stack = append(cs.stack[:0], ClipRect{Rect: base, XOffset: base.X, YOffset: base.Y})
}

// Push adds an area given relative to the current top's origin. The
// effective clip is the intersection with the current top. It returns false
// when the resulting clip is empty.
func (cs *ClipStack) Push(area Rect) bool {
	if len(cs.stack) == 0 {
		cs.Reset(area)
		return !area.Empty()
	}
	top := cs.stack[len(cs.stack)-1]
	if area.W < 0 || area.H < 0 {
		cs.stack = append(cs.stack, ClipRect{Rect: Rect{X: top.X, Y: top.Y}, XOffset: top.XOffset, YOffset: top.YOffset})
		return false
	}
	abs := Rect{X: area.X + top.XOffset, Y: area.Y + top.YOffset, W: area.W, H: area.H}
	c := ClipRect{Rect: abs.Intersect(top.Rect), XOffset: abs.X, YOffset: abs.Y}
	cs.stack = append(cs.stack, c)
	return !c.Empty()
}

// Pop removes the top area. Popping the base area is a no-op.
func (cs *ClipStack) Pop() {
	if len(cs.stack) <= 1 {
		return
	}
	cs.stack = cs.stack[:len(cs.stack)-1]
}

// Top returns the current effective clip.
func (cs *ClipStack) Top() ClipRect {
	if len(cs.stack) == 0 {
		return ClipRect{}
	}
	return cs.stack[len(cs.stack)-1]
}

// Depth returns the number of areas on the stack, including the base.
func (cs *ClipStack) Depth() int {
	return len(cs.stack)
}
