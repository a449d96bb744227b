package gui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Dye is a load-time color transform applied to every non-transparent pixel
// of a decoded image.
type Dye interface {
	Apply(c color.NRGBA) color.NRGBA
}

// DyeFunc adapts a function to the Dye interface.
type DyeFunc func(c color.NRGBA) color.NRGBA

// Apply implements Dye.
func (f DyeFunc) Apply(c color.NRGBA) color.NRGBA { return f(c) }

// applyDye recolors s in place. s must be in FormatRGBA8888.
func applyDye(s *Surface, d Dye) {
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			c := s.PixelAt(x, y)
			if c.A == 0 {
				continue
			}
			out := d.Apply(c)
			out.A = c.A
			s.SetPixel(x, y, out)
		}
	}
}

// Dye channels, indexed by which of red, green and blue are lit.
const (
	channelRed = iota
	channelGreen
	channelYellow
	channelBlue
	channelMagenta
	channelCyan
	channelWhite
	numChannels
)

var channelKeys = map[byte]int{
	'R': channelRed,
	'G': channelGreen,
	'Y': channelYellow,
	'B': channelBlue,
	'M': channelMagenta,
	'C': channelCyan,
	'W': channelWhite,
}

// DyePalette is an ordered list of colors a channel's intensity is
// interpolated through. Intensity zero is implicitly black.
type DyePalette []color.NRGBA

// At returns the palette color for an intensity in 0..255.
func (p DyePalette) At(intensity int) color.NRGBA {
	if intensity <= 0 || len(p) == 0 {
		return color.NRGBA{A: 255}
	}
	last := len(p)
	i := intensity * last / 255
	t := intensity * last % 255

	j := i
	if t == 0 {
		j = i - 1
	}
	c2 := p[j]
	if t == 0 {
		return c2
	}
	var c1 color.NRGBA
	if i > 0 {
		c1 = p[i-1]
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(((255-t)*int(a) + t*int(b)) / 255)
	}
	return color.NRGBA{R: lerp(c1.R, c2.R), G: lerp(c1.G, c2.G), B: lerp(c1.B, c2.B), A: 255}
}

// PaletteDye recolors pure-channel pixels through per-channel palettes.
// A pixel is pure when each of its RGB components is either zero or equal
// to the largest one; the set of lit components selects the channel and the
// largest component is the intensity. Other pixels are left unchanged.
type PaletteDye struct {
	palettes [numChannels]DyePalette
}

// ParseDye parses a dye specification such as
// "R:#ff0000,ffff00;W:#000000,ffffff": semicolon separated channels, each a
// channel letter (R, G, Y, B, M, C, W) followed by a comma separated list of
// hex colors.
func ParseDye(spec string) (*PaletteDye, error) {
	d := &PaletteDye{}
	for _, part := range strings.Split(spec, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(part) < 3 || part[1] != ':' || part[2] != '#' {
			return nil, fmt.Errorf("dye channel %q: expected X:#rrggbb,...", part)
		}
		ch, ok := channelKeys[part[0]]
		if !ok {
			return nil, fmt.Errorf("dye channel %q: unknown channel %q", part, part[0])
		}
		var pal DyePalette
		for _, hex := range strings.Split(part[3:], ",") {
			c, err := parseHexColor(hex)
			if err != nil {
				return nil, fmt.Errorf("dye channel %q: %w", part, err)
			}
			pal = append(pal, c)
		}
		d.palettes[ch] = pal
	}
	return d, nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// SetPalette replaces the palette of a channel given by its letter.
func (d *PaletteDye) SetPalette(channel byte, p DyePalette) error {
	ch, ok := channelKeys[channel]
	if !ok {
		return fmt.Errorf("unknown dye channel %q", channel)
	}
	d.palettes[ch] = p
	return nil
}

// Apply implements Dye.
func (d *PaletteDye) Apply(c color.NRGBA) color.NRGBA {
	cmax := max(c.R, c.G, c.B)
	if cmax == 0 {
		return c
	}
	for _, v := range [3]uint8{c.R, c.G, c.B} {
		if v != 0 && v != cmax {
			return c
		}
	}
	idx := 0
	if c.R != 0 {
		idx |= 1
	}
	if c.G != 0 {
		idx |= 2
	}
	if c.B != 0 {
		idx |= 4
	}
	pal := d.palettes[idx-1]
	if pal == nil {
		return c
	}
	out := pal.At(int(cmax))
	out.A = c.A
	return out
}
