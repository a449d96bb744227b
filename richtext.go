package gui

import (
	"strings"
	"unicode/utf8"
)

const (
	richTextMargin = 10   // kept free at the right edge before wrapping
	richWrapIndent = 15   // indent of wrapped continuation lines
	richWrapMarker = "~"  // drawn at the right edge of a force-broken line
	richRuleMarker = "---" // a row starting with this is a horizontal rule
)

// RichTextMode selects how a RichText handles rows wider than the box.
type RichTextMode int

const (
	// AutoSize never wraps; the width follows the widest row.
	AutoSize RichTextMode = iota
	// AutoWrap wraps rows to the width set with SetWidth.
	AutoWrap
)

// LinkHighlight selects how the hovered link is drawn.
type LinkHighlight int

const (
	HighlightNone       LinkHighlight = 0
	HighlightUnderline  LinkHighlight = 1 << 0
	HighlightBackground LinkHighlight = 1 << 1
)

// Link is a hyperlink span. Y1/Y2 are known once the row is added; X1/X2
// and the final position are computed by layout.
type Link struct {
	Target  string
	Caption string

	X1, Y1, X2, Y2 int

	row int
}

// LinePart is one laid out run of text in a single color, or a horizontal
// rule.
type LinePart struct {
	X, Y  int
	Color Color
	Text  string
	Rule  bool
}

// RichTextOption configures a RichText.
type RichTextOption func(*RichText)

// WithRichTextMode sets the wrap mode. The default is AutoWrap.
func WithRichTextMode(m RichTextMode) RichTextOption {
	return func(rt *RichText) { rt.mode = m }
}

// WithPalette sets the palette used for color codes.
func WithPalette(p *Palette) RichTextOption {
	return func(rt *RichText) { rt.palette = p }
}

// WithMaxRows keeps only the newest n rows. Zero keeps everything.
func WithMaxRows(n int) RichTextOption {
	return func(rt *RichText) { rt.maxRows = n }
}

// WithMarkup enables or disables color codes and hyperlinks. When disabled
// rows are shown literally.
func WithMarkup(enabled bool) RichTextOption {
	return func(rt *RichText) { rt.markup = enabled }
}

// WithLinkHighlight sets how the hovered link is drawn.
func WithLinkHighlight(h LinkHighlight) RichTextOption {
	return func(rt *RichText) { rt.highlight = h }
}

// RichText is a multi-line text box model with inline markup:
//
//	##c            switch to palette color c ("##1Red ##0Black")
//	@@target|text@@ hyperlink showing text, stored as "##<text##>"
//	---            a row drawn as a horizontal rule
//
// Layout is recomputed lazily whenever the rows or the width change.
// Malformed markup is shown literally; layout never fails.
type RichText struct {
	font      Font
	palette   *Palette
	mode      RichTextMode
	maxRows   int
	markup    bool
	highlight LinkHighlight

	rows  []string
	links []Link
	width int

	parts  []LinePart
	height int
	dirty  bool
	hover  int
}

// NewRichText creates an empty rich text box measuring with f.
func NewRichText(f Font, opts ...RichTextOption) *RichText {
	rt := &RichText{
		font:      f,
		palette:   DefaultPalette(),
		mode:      AutoWrap,
		markup:    true,
		highlight: HighlightUnderline | HighlightBackground,
		hover:     -1,
		dirty:     true,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// AddRow appends a row, converting "@@target|caption@@" into a link.
// An unterminated link is kept as literal text.
func (rt *RichText) AddRow(row string) {
	if rt.markup {
		row = rt.extractLinks(row, len(rt.rows))
	}
	rt.rows = append(rt.rows, row)

	if rt.maxRows > 0 && len(rt.rows) > rt.maxRows {
		drop := len(rt.rows) - rt.maxRows
		rt.rows = append(rt.rows[:0], rt.rows[drop:]...)
		kept := rt.links[:0]
		for _, l := range rt.links {
			if l.row < drop {
				continue
			}
			l.row -= drop
			kept = append(kept, l)
		}
		rt.links = kept
	}
	rt.invalidate()
}

func (rt *RichText) extractLinks(row string, rowIdx int) string {
	fh := rt.font.Height()
	var out strings.Builder
	rest := row
	for {
		i := strings.Index(rest, "@@")
		if i < 0 {
			break
		}
		bar := strings.IndexByte(rest[i+2:], '|')
		if bar < 0 {
			break
		}
		bar += i + 2
		end := strings.Index(rest[bar+1:], "@@")
		if end < 0 {
			break
		}
		end += bar + 1

		if end == bar+1 {
			// No caption: keep the markup as typed.
			out.WriteString(rest[:end+2])
			rest = rest[end+2:]
			continue
		}

		l := Link{
			Target:  rest[i+2 : bar],
			Caption: rest[bar+1 : end],
			Y1:      rowIdx * fh,
			Y2:      rowIdx*fh + fh,
			row:     rowIdx,
		}
		out.WriteString(rest[:i])
		rest = rest[end+2:]
		out.WriteString("##<" + l.Caption + "##>")
		rt.links = append(rt.links, l)
	}
	out.WriteString(rest)
	return out.String()
}

// Clear removes all rows and links.
func (rt *RichText) Clear() {
	rt.rows = rt.rows[:0]
	rt.links = rt.links[:0]
	rt.hover = -1
	rt.invalidate()
}

// Rows returns the stored rows with links in their "##<caption##>" form.
func (rt *RichText) Rows() []string {
	return rt.rows
}

// SetWidth sets the wrap width.
func (rt *RichText) SetWidth(w int) {
	if w == rt.width {
		return
	}
	rt.width = w
	rt.invalidate()
}

// SetFont changes the font and invalidates the layout.
func (rt *RichText) SetFont(f Font) {
	rt.font = f
	rt.invalidate()
}

func (rt *RichText) invalidate() {
	rt.dirty = true
}

func (rt *RichText) ensureLayout() {
	if rt.dirty {
		rt.layout()
		rt.dirty = false
	}
}

// Width returns the box width. In AutoSize mode it is the widest row.
func (rt *RichText) Width() int {
	rt.ensureLayout()
	return rt.width
}

// Height returns the laid out height.
func (rt *RichText) Height() int {
	rt.ensureLayout()
	return rt.height
}

// Parts returns the laid out line parts.
func (rt *RichText) Parts() []LinePart {
	rt.ensureLayout()
	return rt.parts
}

// Links returns the laid out links.
func (rt *RichText) Links() []Link {
	rt.ensureLayout()
	return rt.links
}

// LinkAt returns the link under (x, y), in box coordinates.
func (rt *RichText) LinkAt(x, y int) (Link, bool) {
	if i := rt.linkIndex(x, y); i >= 0 {
		return rt.links[i], true
	}
	return Link{}, false
}

func (rt *RichText) linkIndex(x, y int) int {
	rt.ensureLayout()
	for i, l := range rt.links {
		if x >= l.X1 && x < l.X2 && y >= l.Y1 && y < l.Y2 {
			return i
		}
	}
	return -1
}

// SetHover marks the link under (x, y), if any, as hovered.
func (rt *RichText) SetHover(x, y int) {
	rt.hover = rt.linkIndex(x, y)
}

type richToken struct {
	code byte // 0 for text
	text string
}

// tokenize splits a row at control sequences. "##" followed by a known code
// is a control; anything else stays text.
func (rt *RichText) tokenize(row string) []richToken {
	if !rt.markup {
		return []richToken{{text: row}}
	}
	var toks []richToken
	var text strings.Builder
	for i := 0; i < len(row); {
		if i+2 < len(row) && row[i] == '#' && row[i+1] == '#' {
			c := row[i+2]
			if _, known := rt.palette.Lookup(c); known || c == '<' || c == '>' {
				if text.Len() > 0 {
					toks = append(toks, richToken{text: text.String()})
					text.Reset()
				}
				toks = append(toks, richToken{code: c})
				i += 3
				continue
			}
		}
		text.WriteByte(row[i])
		i++
	}
	if text.Len() > 0 {
		toks = append(toks, richToken{text: text.String()})
	}
	return toks
}

func (rt *RichText) layout() {
	rt.parts = rt.parts[:0]
	f := rt.font
	fh := f.Height()
	markerWidth := f.Width(richWrapMarker)
	def := rt.palette.Color(CodeDefault)

	y := 0
	widest := 0
	li := 0 // next link to place
	for ri, row := range rt.rows {
		for li < len(rt.links) && rt.links[li].row < ri {
			li++
		}
		if strings.HasPrefix(row, richRuleMarker) {
			rt.parts = append(rt.parts, LinePart{Y: y, Color: def, Rule: true})
			y += fh
			continue
		}

		sel, prev := def, def
		x := 0
		open := -1
		for _, tok := range rt.tokenize(row) {
			switch tok.code {
			case 0:
			case '<':
				prev = sel
				sel = rt.palette.Color(CodeHyperlink)
				if li < len(rt.links) && rt.links[li].row == ri {
					l := &rt.links[li]
					l.X1, l.Y1 = x, y
					l.X2, l.Y2 = x+f.Width(l.Caption), y+fh
					open = li
					li++
				}
				continue
			case '>':
				sel = prev
				if open >= 0 && rt.links[open].Y1 == y {
					rt.links[open].X2 = x
				}
				open = -1
				continue
			default:
				sel = rt.palette.Color(tok.code)
				continue
			}

			part := tok.text
			for part != "" {
				w := f.Width(part)
				if rt.mode != AutoWrap || x+w+richTextMargin <= rt.width {
					rt.parts = append(rt.parts, LinePart{X: x, Y: y, Color: sel, Text: part})
					x += w
					break
				}
				cut, forced := rt.breakPoint(part, x, markerWidth)
				if cut > 0 {
					rt.parts = append(rt.parts, LinePart{X: x, Y: y, Color: sel, Text: part[:cut]})
				}
				if forced {
					rt.parts = append(rt.parts, LinePart{X: rt.width - markerWidth, Y: y, Color: sel, Text: richWrapMarker})
				}
				part = part[cut:]
				if !forced {
					part = strings.TrimPrefix(part, " ")
				}
				widest = max(widest, x)
				y += fh
				x = richWrapIndent
			}
			widest = max(widest, x)
		}
		y += fh
	}
	rt.height = y
	if rt.mode == AutoSize {
		rt.width = widest
	}
}

// breakPoint picks where to cut part so that it fits after x. It prefers
// the last fitting space; otherwise it cuts at a UTF-8 character boundary
// leaving room for the wrap marker (forced). A zero cut means nothing fits
// and the part moves to the next line.
func (rt *RichText) breakPoint(part string, x, markerWidth int) (cut int, forced bool) {
	f := rt.font
	avail := rt.width - richTextMargin - x
	for sp := strings.LastIndexByte(part, ' '); sp > 0; sp = strings.LastIndexByte(part[:sp], ' ') {
		if f.Width(part[:sp]) <= avail {
			return sp, false
		}
	}

	for cut = len(part); cut > 0; {
		cut = prevRuneStart(part, cut)
		if cut > 0 && f.Width(part[:cut])+markerWidth <= avail {
			return cut, true
		}
	}
	if x > richWrapIndent {
		return 0, false
	}
	_, n := utf8.DecodeRuneInString(part)
	return n, true
}

// prevRuneStart returns the start of the character before byte offset i,
// skipping UTF-8 continuation bytes (10xxxxxx).
func prevRuneStart(s string, i int) int {
	i--
	for i > 0 && s[i]&0xC0 == 0x80 {
		i--
	}
	return i
}

// Draw renders the visible lines through g. Coordinates are relative to
// the current clip area. Only font errors are returned; they are fatal.
func (rt *RichText) Draw(g Graphics) error {
	rt.ensureLayout()
	fh := rt.font.Height()
	if fh <= 0 {
		return nil
	}
	clip := g.ClipArea()
	lines := NewLineClipper((rt.height+fh-1)/fh, fh, clip.H, clip.Y-clip.YOffset)

	var hovered *Link
	if rt.hover >= 0 && rt.hover < len(rt.links) {
		hovered = &rt.links[rt.hover]
	}
	if hovered != nil && rt.highlight&HighlightBackground != 0 {
		g.SetColor(rt.palette.Color(CodeHighlight))
		g.FillRectangle(Rect{X: hovered.X1, Y: hovered.Y1, W: hovered.X2 - hovered.X1, H: hovered.Y2 - hovered.Y1})
	}

	for _, p := range rt.parts {
		if !lines.ShouldRender(p.Y / fh) {
			continue
		}
		if p.Rule {
			g.SetColor(p.Color)
			g.DrawLine(0, p.Y+fh/2, rt.width, p.Y+fh/2)
			continue
		}
		if err := rt.font.DrawText(g, p.Text, p.X, p.Y, p.Color); err != nil {
			return err
		}
	}

	if hovered != nil && rt.highlight&HighlightUnderline != 0 {
		g.SetColor(rt.palette.Color(CodeHyperlink))
		g.DrawLine(hovered.X1, hovered.Y2-1, hovered.X2, hovered.Y2-1)
	}
	return nil
}
