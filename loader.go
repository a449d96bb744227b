package gui

import (
	"bytes"
	"fmt"
	"image"
	"os"

	// Codecs available to Load.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// DefaultMaxPixels bounds the decoded size of a single image.
const DefaultMaxPixels = 4096 * 4096

// Loader decodes encoded image bytes and hands the pixels to the backend
// chosen at startup.
type Loader struct {
	backend   Backend
	maxPixels int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMaxPixels bounds the number of pixels a decoded image may have.
func WithMaxPixels(n int) LoaderOption {
	return func(l *Loader) { l.maxPixels = n }
}

// NewLoader creates a loader for the given backend.
func NewLoader(backend Backend, opts ...LoaderOption) *Loader {
	l := &Loader{backend: backend, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Backend returns the backend images are uploaded to.
func (l *Loader) Backend() Backend {
	return l.backend
}

// Load decodes an image. Decode failures are logged and returned; callers
// treat the image as absent.
func (l *Loader) Load(data []byte) (*Image, error) {
	return l.LoadDyed(data, nil)
}

// LoadDyed decodes an image and recolors every non-transparent pixel with
// dye before the image is finalized. A nil dye loads the image unchanged.
func (l *Loader) LoadDyed(data []byte, dye Dye) (*Image, error) {
	s, err := l.decode(data)
	if err != nil {
		Logger().Warn("image load failed", "err", err)
		return nil, err
	}
	if dye != nil {
		applyDye(s, dye)
	}
	img, err := l.FromSurface(s)
	if err != nil {
		Logger().Warn("image upload failed", "backend", l.backend.Name(), "err", err)
		return nil, err
	}
	return img, nil
}

// LoadFile reads and decodes an image file.
func (l *Loader) LoadFile(path string, dye Dye) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	img, err := l.LoadDyed(data, dye)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}

// FromSurface wraps an RGBA8888 surface in a new image on the loader's
// backend. The loader takes ownership of the surface.
func (l *Loader) FromSurface(s *Surface) (*Image, error) {
	if s.Format != FormatRGBA8888 {
		s = s.Convert(FormatRGBA8888)
	}
	st, err := l.backend.Upload(s)
	if err != nil {
		return nil, err
	}
	return newImage(l.backend, st), nil
}

func (l *Loader) decode(data []byte) (*Surface, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %s image is %dx%d", ErrDecodeFailed, format, cfg.Width, cfg.Height)
	}
	if l.maxPixels > 0 && cfg.Width*cfg.Height > l.maxPixels {
		return nil, fmt.Errorf("%w: %s image is %dx%d", ErrOutOfMemory, format, cfg.Width, cfg.Height)
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return SurfaceFromImage(decoded), nil
}
