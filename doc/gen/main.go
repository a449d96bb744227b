// Command gen renders sample scenes with the software backend and saves
// JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/aethyra/gui"
)

// screenshot defines a single scene to capture.
type screenshot struct {
	name   string // filename without extension
	width  int
	height int
	draw   func(g gui.Graphics, env *env) error
}

// env holds the resources shared by all scenes.
type env struct {
	loader *gui.Loader
	font   *gui.TrueTypeFont
	fixed  *gui.TrueTypeFont
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	loader := gui.NewLoader(gui.NewSoftwareBackend())
	font, err := gui.DefaultTrueTypeFont(13, loader, 0)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	defer font.Release()
	fixed := gui.FixedFont(loader, 0)
	defer fixed.Release()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	e := &env{loader: loader, font: font, fixed: fixed}
	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(e, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(e *env, s screenshot, outDir string) error {
	target := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	g := gui.NewSoftwareGraphics(target)
	g.Begin()
	g.SetColor(gui.RGB(0x1f1f24))
	g.FillRectangle(gui.Rect{W: s.width, H: s.height})
	if err := s.draw(g, e); err != nil {
		return err
	}

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, target, &jpeg.Options{Quality: 90})
}

func buildScreenshots() []screenshot {
	return []screenshot{
		{name: "richtext", width: 360, height: 150, draw: drawRichText},
		{name: "wrap", width: 220, height: 150, draw: drawWrap},
		{name: "nineslice", width: 240, height: 140, draw: drawNineSlice},
		{name: "dye", width: 200, height: 60, draw: drawDye},
	}
}

func drawRichText(g gui.Graphics, e *env) error {
	rt := gui.NewRichText(e.font, gui.WithLinkHighlight(gui.HighlightUnderline))
	rt.SetWidth(340)
	rt.AddRow("##SServer: ##0Welcome. Colors: ##1red ##2green ##3blue ##4orange")
	rt.AddRow("---")
	rt.AddRow("##YPlayer: ##0see the @@https://example.org|guide@@ before trading")
	rt.AddRow("##WWhisper: ##0supercalifragilisticexpialidocious-and-then-some")
	rt.SetHover(rt.Links()[0].X1+1, rt.Links()[0].Y1+1)

	g.PushClipArea(gui.Rect{X: 10, Y: 10, W: 340, H: 130})
	defer g.PopClipArea()
	g.SetColor(gui.ColorWhite)
	g.FillRectangle(gui.Rect{W: 340, H: rt.Height()})
	return rt.Draw(g)
}

func drawWrap(g gui.Graphics, e *env) error {
	text, _ := gui.WrapLetters(e.fixed, "The quick brown fox jumps over the lazy dog, twice.", 200)
	y := 10
	for _, line := range splitLines(text) {
		if err := e.fixed.DrawText(g, line, 10, y, gui.RGB(0xebc873)); err != nil {
			return err
		}
		y += e.fixed.Height()
	}
	short := gui.TruncateText(e.fixed, "A label that is far too long", 120)
	return e.fixed.DrawText(g, short, 10, y+10, gui.ColorWhite)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func drawNineSlice(g gui.Graphics, e *env) error {
	const size, border = 24, 8
	s := gui.NewSurface(size, size, gui.FormatRGBA8888)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := gui.RGB(0x3c3c46)
			if x < 2 || y < 2 || x >= size-2 || y >= size-2 {
				c = gui.RGB(0xc8a050)
			}
			s.SetPixel(x, y, c.NRGBA())
		}
	}
	img, err := e.loader.FromSurface(s)
	if err != nil {
		return err
	}
	frame, err := gui.NewImageRect(img, border, border, border, border)
	img.DecRef()
	if err != nil {
		return err
	}
	defer frame.Release()

	frame.Draw(g, gui.Rect{X: 10, Y: 10, W: 100, H: 120})
	frame.SetAlpha(0.5)
	frame.Draw(g, gui.Rect{X: 120, Y: 30, W: 110, H: 80})
	return nil
}

func drawDye(g gui.Graphics, e *env) error {
	// A red ramp recolored through a two-stop palette.
	ramp := image.NewNRGBA(image.Rect(0, 0, 180, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 180; x++ {
			ramp.SetNRGBA(x, y, color.NRGBA{R: uint8(40 + x*215/179), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, ramp); err != nil {
		return err
	}
	dye, err := gui.ParseDye("R:#203080,60c0ff")
	if err != nil {
		return err
	}
	img, err := e.loader.LoadDyed(buf.Bytes(), dye)
	if err != nil {
		return err
	}
	defer img.DecRef()
	g.DrawImage(img, 0, 0, 10, 10, img.Width(), img.Height())
	return nil
}
