package gui_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aethyra/gui"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gui", "config.toml")
	conf := gui.DefaultConfig()
	conf.Backend = gui.BackendSoftware
	conf.Opacity = 0.75
	conf.GlyphCacheSize = 64
	conf.FontPath = "/usr/share/fonts/dejavu.ttf"
	conf.Colors = map[string]string{"H": "#112233"}

	if err := gui.WriteConfig(path, conf); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	got, err := gui.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(conf, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeConfigDefaults(t *testing.T) {
	conf, err := gui.DecodeConfig(`
Backend = "software"
Opacity = 3.5
QuadCapacity = -1
`)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if conf.Opacity != 1 {
		t.Errorf("opacity should be clamped, got %v", conf.Opacity)
	}
	if conf.QuadCapacity != gui.DefaultQuadCapacity || conf.GlyphCacheSize != gui.DefaultGlyphCacheSize {
		t.Errorf("unset sizes should use defaults: %+v", conf)
	}
	big, err := gui.DecodeConfig("QuadCapacity = 20000")
	if err != nil {
		t.Fatal(err)
	}
	if big.QuadCapacity != gui.MaxQuadCapacity {
		t.Errorf("quad capacity = %d, want capped at %d", big.QuadCapacity, gui.MaxQuadCapacity)
	}
	if conf.ScreenWidth != 800 || conf.ScreenHeight != 600 {
		t.Errorf("screen = %dx%d", conf.ScreenWidth, conf.ScreenHeight)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name, data string
	}{
		{"syntax", `Backend = `},
		{"backend", `Backend = "vulkan"`},
		{"screen", `ScreenWidth = 0`},
		{"color code", "[Colors]\nHH = \"#ffffff\""},
		{"color value", "[Colors]\nH = \"#fff\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gui.DecodeConfig(tt.data); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestConfigPalette(t *testing.T) {
	conf := gui.DefaultConfig()
	conf.Colors = map[string]string{"H": "#112233", "9": "ffffff"}
	p := conf.Palette()
	if got := p.Color('H'); got != gui.RGB(0x112233) {
		t.Errorf("H = %+v", got)
	}
	if got := p.Color('9'); got != gui.ColorWhite {
		t.Errorf("9 = %+v", got)
	}
	if got := p.Color('1'); got != gui.RGB(0xff0000) {
		t.Errorf("untouched code changed: %+v", got)
	}
}

func TestSettingsOpacity(t *testing.T) {
	s := gui.NewSettings(gui.DefaultConfig())
	var got []float32
	s.OnOpacityChange(func(a float32) { got = append(got, a) })

	s.SetOpacity(0.5)
	s.SetOpacity(0.5) // unchanged
	s.SetOpacity(-1)

	if diff := cmp.Diff([]float32{0.5, 0}, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if s.Config().Opacity != 0 {
		t.Errorf("stored opacity = %v", s.Config().Opacity)
	}
}
