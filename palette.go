package gui

// Palette maps the single-character codes used in rich text ("##1") to
// colors.
type Palette struct {
	colors map[byte]Color
}

// Well-known palette codes.
const (
	CodeDefault   byte = '0'
	CodeHighlight byte = 'H'
	CodeHyperlink byte = '<'
)

// DefaultPalette returns the standard chat palette: digits for plain
// colors, letters for message categories and '<' for hyperlinks.
func DefaultPalette() *Palette {
	return &Palette{colors: map[byte]Color{
		'0': ColorBlack,
		'1': RGB(0xff0000), // red
		'2': RGB(0x009000), // green
		'3': RGB(0x0000ff), // blue
		'4': RGB(0xe0980e), // orange
		'5': RGB(0xf1dc27), // yellow
		'6': RGB(0xff00d8), // pink
		'7': RGB(0x8415e2), // purple
		'8': RGB(0x919191), // gray
		'9': RGB(0x8e4c17), // brown

		'C': RGB(0x000000), // chat
		'G': RGB(0xff0000), // GM
		'H': RGB(0xebc873), // highlight
		'Y': RGB(0x1fa052), // player
		'W': RGB(0x0000ff), // whisper
		'I': RGB(0xf1dc27), // is
		'P': RGB(0xff00d8), // party
		'S': RGB(0x8415e2), // server
		'L': RGB(0x919191), // logger
		'<': RGB(0xe50d0d), // hyperlink
	}}
}

// Lookup returns the color for a code.
func (p *Palette) Lookup(code byte) (Color, bool) {
	c, ok := p.colors[code]
	return c, ok
}

// Color returns the color for a code, or black when the code is unknown.
func (p *Palette) Color(code byte) Color {
	if c, ok := p.colors[code]; ok {
		return c
	}
	return ColorBlack
}

// Set assigns a color to a code. The control codes '<' and '>' of
// hyperlinks can be recolored but '>' always restores the previous color.
func (p *Palette) Set(code byte, c Color) {
	if code == '>' {
		return
	}
	p.colors[code] = c
}
