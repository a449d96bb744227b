// Example renders a framed chat box with colored rich text and a hyperlink.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// With -config pointing at a TOML file whose backend is "software", the
// frame is rendered on the CPU and written to -out instead of a window.
package main

import (
	"embed"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"runtime"

	"github.com/aethyra/gui"
	"github.com/aethyra/gui/backend/opengl"
)

const windowTitle = "gui example"

// frameSkin is the nine-slice image behind the chat box.
const frameSkin = "skin/window.png"

//go:embed skin
var skinFiles embed.FS

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	out := flag.String("out", "frame.png", "output image for the software backend")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if err := run(*configPath, *out, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, out string, verbose bool) error {
	gui.SetVerbose(verbose)

	conf := gui.DefaultConfig()
	if configPath != "" {
		var err error
		if conf, err = gui.LoadConfig(configPath); err != nil {
			return err
		}
	}
	settings := gui.NewSettings(conf)

	if conf.Backend == gui.BackendSoftware {
		return runSoftware(settings, out)
	}
	return runOpenGL(settings)
}

// scene is the content drawn every frame.
type scene struct {
	font  gui.Font
	text  *gui.RichText
	skins *gui.SkinManager
	frame *gui.ImageRect
	box   gui.Rect
}

// newScene loads the scene's resources. Skins follow the opacity in
// settings, including later changes.
func newScene(settings *gui.Settings, loader *gui.Loader) (*scene, error) {
	conf := settings.Config()
	font, err := loadFont(conf, loader)
	if err != nil {
		return nil, err
	}
	skins := gui.NewSkinManager(skinFiles, loader)
	skins.SetOpacity(conf.Opacity)
	settings.OnOpacityChange(skins.SetOpacity)

	frame, err := makeFrame(skins)
	if err != nil {
		return nil, err
	}

	box := gui.Rect{X: 40, Y: 40, W: 420, H: 220}
	text := gui.NewRichText(font, gui.WithPalette(conf.Palette()), gui.WithMaxRows(100))
	text.SetWidth(box.W - 24)
	text.AddRow("##SWelcome to the ##1red##S, ##2green##S and ##3blue##S server.")
	text.AddRow("---")
	text.AddRow("##YPlayer: ##0Has anyone seen the @@https://example.org/wiki|wiki page@@ about dyes?")
	text.AddRow("##WWhisper: ##0averyveryveryverylongwordthatcannotbreakanywhereatallandkeepsgoing")
	text.AddRow("##P多言語のテキストも折り返されます。")
	return &scene{font: font, text: text, skins: skins, frame: frame, box: box}, nil
}

// close releases the scene's skin images.
func (s *scene) close() {
	s.frame.Release()
	s.skins.Release(frameSkin)
}

func loadFont(conf gui.Config, loader *gui.Loader) (gui.Font, error) {
	if conf.FontPath == "" {
		return gui.DefaultTrueTypeFont(conf.FontSize, loader, conf.GlyphCacheSize)
	}
	ttf, err := os.ReadFile(conf.FontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return gui.NewTrueTypeFont(ttf, conf.FontSize, loader, conf.GlyphCacheSize)
}

// makeFrame slices the frame skin into a nine-slice border.
func makeFrame(skins *gui.SkinManager) (*gui.ImageRect, error) {
	const border = 8
	img, err := skins.Acquire(frameSkin)
	if err != nil {
		return nil, fmt.Errorf("frame skin: %w", err)
	}
	frame, err := gui.NewImageRect(img, border, border, border, border)
	if err != nil {
		skins.Release(frameSkin)
		return nil, err
	}
	return frame, nil
}

func (s *scene) draw(g gui.Graphics) error {
	s.frame.Draw(g, s.box)
	visible := g.PushClipArea(gui.Rect{X: s.box.X + 12, Y: s.box.Y + 12, W: s.box.W - 24, H: s.box.H - 24})
	defer g.PopClipArea()
	if !visible {
		return nil
	}
	return s.text.Draw(g)
}

// hover translates window coordinates into the text box.
func (s *scene) hover(x, y int) {
	s.text.SetHover(x-s.box.X-12, y-s.box.Y-12)
}

func runSoftware(settings *gui.Settings, out string) error {
	conf := settings.Config()
	loader := gui.NewLoader(gui.NewSoftwareBackend(), gui.WithMaxPixels(conf.MaxPixels))
	sc, err := newScene(settings, loader)
	if err != nil {
		return err
	}
	defer sc.close()

	target := image.NewRGBA(image.Rect(0, 0, conf.ScreenWidth, conf.ScreenHeight))
	g := gui.NewSoftwareGraphics(target)
	g.Begin()
	g.SetColor(gui.RGB(0x1e1e24))
	g.FillRectangle(gui.Rect{W: conf.ScreenWidth, H: conf.ScreenHeight})
	if err := sc.draw(g); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, target)
}

func runOpenGL(settings *gui.Settings) error {
	conf := settings.Config()
	window, err := opengl.NewWindow(windowTitle, conf.ScreenWidth, conf.ScreenHeight)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := opengl.NewRenderer(conf.ScreenWidth, conf.ScreenHeight)
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	defer renderer.Delete()

	loader := gui.NewLoader(opengl.NewBackend(), gui.WithMaxPixels(conf.MaxPixels))
	sc, err := newScene(settings, loader)
	if err != nil {
		return err
	}
	defer sc.close()

	window.OnMouseMove(sc.hover)
	window.OnClick(func(x, y int) {
		if l, ok := sc.text.LinkAt(x-sc.box.X-12, y-sc.box.Y-12); ok {
			gui.Logger().Info("link clicked", "target", l.Target, "caption", l.Caption)
		}
	})

	g := gui.NewBatchGraphics(renderer, gui.WithQuadCapacity(conf.QuadCapacity))
	for !window.ShouldClose() {
		w, h := window.BeginFrame(gui.RGB(0x1e1e24))
		g.Begin(w, h)
		if err := sc.draw(g); err != nil {
			return fmt.Errorf("draw: %w", err)
		}
		if err := g.End(); err != nil {
			return fmt.Errorf("gui render: %w", err)
		}
		window.EndFrame()
	}
	return nil
}
