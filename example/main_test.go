package main

import (
	"image"
	"testing"

	"github.com/aethyra/gui"
)

func TestSceneSkinFollowsOpacity(t *testing.T) {
	settings := gui.NewSettings(gui.DefaultConfig())
	sc, err := newScene(settings, gui.NewLoader(gui.NewSoftwareBackend()))
	if err != nil {
		t.Fatalf("newScene: %v", err)
	}
	defer sc.close()

	if sc.skins.Holders(frameSkin) != 1 {
		t.Errorf("frame skin holders = %d, want 1", sc.skins.Holders(frameSkin))
	}
	corner := sc.frame.Grid[0]
	if c, err := corner.PixelAt(0, 0); err != nil || c.A != 255 {
		t.Fatalf("corner pixel = %v, %v", c, err)
	}

	settings.SetOpacity(0.5)
	if sc.skins.Opacity() != 0.5 {
		t.Errorf("skin opacity = %v, want 0.5", sc.skins.Opacity())
	}
	if c, _ := corner.PixelAt(0, 0); c.A != 128 {
		t.Errorf("corner alpha after opacity change = %d, want 128", c.A)
	}

	g := gui.NewSoftwareGraphics(image.NewRGBA(image.Rect(0, 0, 500, 300)))
	g.Begin()
	if err := sc.draw(g); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got := g.Target().RGBAAt(sc.box.X, sc.box.Y).A; got != 128 {
		t.Errorf("drawn frame corner alpha = %d, want 128", got)
	}
}
