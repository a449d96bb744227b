package gui

// LineClipper calculates which lines of uniform height intersect a
// visible window, so long texts draw only what is on screen.
//
// Usage:
//
//	c := NewLineClipper(totalLines, lineHeight, visibleHeight, scrollY)
//	for i := c.StartIdx; i < c.EndIdx; i++ {
//	    y := c.LineY(i, baseY, scrollY)
//	    // Draw line at y
//	}
type LineClipper struct {
	StartIdx   int // First visible line (inclusive)
	EndIdx     int // Last visible line (exclusive)
	LineHeight int // Height of each line
	TotalLines int // Total number of lines
}

// NewLineClipper calculates the visible line range.
//
// Parameters:
//   - totalLines: Total number of lines
//   - lineHeight: Height of each line in pixels
//   - visibleHeight: Height of the visible area in pixels
//   - scrollY: Offset of the visible area from the first line
func NewLineClipper(totalLines, lineHeight, visibleHeight, scrollY int) *LineClipper {
	if totalLines == 0 || lineHeight <= 0 {
		return &LineClipper{LineHeight: lineHeight, TotalLines: totalLines}
	}

	startIdx := scrollY / lineHeight
	if startIdx < 0 {
		startIdx = 0
	}

	// +2 for partial visibility at top/bottom
	endIdx := startIdx + visibleHeight/lineHeight + 2

	if startIdx > totalLines {
		startIdx = totalLines
	}
	if endIdx > totalLines {
		endIdx = totalLines
	}
	if endIdx < startIdx {
		endIdx = startIdx
	}

	return &LineClipper{
		StartIdx:   startIdx,
		EndIdx:     endIdx,
		LineHeight: lineHeight,
		TotalLines: totalLines,
	}
}

// ShouldRender returns true if the line at the given index is visible.
func (c *LineClipper) ShouldRender(idx int) bool {
	return idx >= c.StartIdx && idx < c.EndIdx
}

// LineY calculates the Y position of a line relative to the visible area.
func (c *LineClipper) LineY(idx, baseY, scrollY int) int {
	return baseY + idx*c.LineHeight - scrollY
}

// VisibleCount returns the number of lines that should be rendered.
func (c *LineClipper) VisibleCount() int {
	return c.EndIdx - c.StartIdx
}

// ContentHeight returns the total content height.
func (c *LineClipper) ContentHeight() int {
	return c.TotalLines * c.LineHeight
}
