package gui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in Config.Backend.
const (
	BackendOpenGL   = "opengl"
	BackendSoftware = "software"
)

// Config is the GUI section of the client configuration file.
type Config struct {
	Backend        string
	Opacity        float32
	GlyphCacheSize int
	QuadCapacity   int
	FontPath       string
	FontSize       float64
	MaxPixels      int
	ScreenWidth    int
	ScreenHeight   int
	// Colors overrides rich-text palette codes, e.g. {"H" = "#ebc873"}.
	Colors map[string]string
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendOpenGL,
		Opacity:        1,
		GlyphCacheSize: DefaultGlyphCacheSize,
		QuadCapacity:   DefaultQuadCapacity,
		FontSize:       12,
		MaxPixels:      DefaultMaxPixels,
		ScreenWidth:    800,
		ScreenHeight:   600,
	}
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, fmt.Errorf("read config %s: %w", path, err)
	}
	return conf, conf.Validate()
}

// DecodeConfig parses TOML text over the defaults.
func DecodeConfig(data string) (Config, error) {
	conf := DefaultConfig()
	if _, err := toml.Decode(data, &conf); err != nil {
		return conf, fmt.Errorf("decode config: %w", err)
	}
	return conf, conf.Validate()
}

// WriteConfig encodes conf to path, creating parent directories.
func WriteConfig(path string, conf Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values the GUI cannot run with and clamps the rest.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOpenGL, BackendSoftware:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("screen %dx%d: %w", c.ScreenWidth, c.ScreenHeight, ErrInvalidSize)
	}
	c.Opacity = clampf(c.Opacity, 0, 1)
	if c.GlyphCacheSize <= 0 {
		c.GlyphCacheSize = DefaultGlyphCacheSize
	}
	if c.QuadCapacity <= 0 {
		c.QuadCapacity = DefaultQuadCapacity
	}
	c.QuadCapacity = min(c.QuadCapacity, MaxQuadCapacity)
	for code, hex := range c.Colors {
		if len(code) != 1 {
			return fmt.Errorf("color code %q must be one character", code)
		}
		if _, err := parseHexColor(hex); err != nil {
			return fmt.Errorf("color code %q: %w", code, err)
		}
	}
	return nil
}

// Palette returns the default palette with the configured overrides.
func (c *Config) Palette() *Palette {
	p := DefaultPalette()
	for code, hex := range c.Colors {
		if len(code) != 1 {
			continue
		}
		if col, err := parseHexColor(hex); err == nil {
			p.Set(code[0], Color{R: col.R, G: col.G, B: col.B, A: 255})
		}
	}
	return p
}

// Settings holds the live configuration and tells listeners about
// opacity changes.
type Settings struct {
	mu        sync.Mutex
	conf      Config
	listeners []func(float32)
}

// NewSettings wraps a loaded configuration.
func NewSettings(conf Config) *Settings {
	return &Settings{conf: conf}
}

// Config returns a copy of the current configuration.
func (s *Settings) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conf
}

// OnOpacityChange registers fn to be called with the new opacity.
func (s *Settings) OnOpacityChange(fn func(float32)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetOpacity changes the GUI opacity and notifies listeners if it changed.
func (s *Settings) SetOpacity(a float32) {
	a = clampf(a, 0, 1)
	s.mu.Lock()
	if s.conf.Opacity == a {
		s.mu.Unlock()
		return
	}
	s.conf.Opacity = a
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(a)
	}
}
