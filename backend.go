package gui

// Backend turns decoded surfaces into drawable storage. Exactly one backend
// is chosen at startup and injected into the Loader; images never switch
// backends afterwards.
type Backend interface {
	// Name identifies the backend in logs and configuration ("software", "opengl").
	Name() string

	// Upload takes ownership of a surface in FormatRGBA8888 and returns the
	// backend storage for it.
	Upload(s *Surface) (Storage, error)
}

// Storage is the backing store of an image: a software surface or a GPU
// texture. One Storage is shared by an image and all its sub-images.
type Storage interface {
	// Size returns the logical size in pixels.
	Size() (w, h int)

	// Pixels returns the CPU-side surface. Sub-images only read through it.
	// Storages that keep no CPU copy return nil.
	Pixels() *Surface

	// ApplyAlpha rescales the stored pixel alpha. It returns false when the
	// backend applies alpha at draw time instead.
	ApplyAlpha(a float32) bool

	// Release frees the backend resources.
	Release()
}

// TextureStorage is implemented by storages living in GPU textures.
// texW and texH are the allocated (possibly padded) texture dimensions.
type TextureStorage interface {
	Storage
	Texture() (id uint32, texW, texH int)
}

// SoftwareBackend keeps images as CPU surfaces converted to a display format.
type SoftwareBackend struct{}

// NewSoftwareBackend returns the software backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// Name implements Backend.
func (*SoftwareBackend) Name() string { return "software" }

// Upload snapshots the per-pixel alpha and picks the display format: the
// alpha-aware format if any pixel is translucent, the opaque one otherwise.
func (*SoftwareBackend) Upload(s *Surface) (Storage, error) {
	if s.W <= 0 || s.H <= 0 {
		return nil, ErrInvalidSize
	}
	if s.HasTranslucency() {
		if s.Format != FormatRGBA8888 {
			s = s.Convert(FormatRGBA8888)
		}
		s.SnapshotAlpha()
		return &softwareStorage{surface: s}, nil
	}
	return &softwareStorage{surface: s.Convert(FormatXRGB8888)}, nil
}

type softwareStorage struct {
	surface *Surface
}

func (s *softwareStorage) Size() (int, int) {
	if s.surface == nil {
		return 0, 0
	}
	return s.surface.W, s.surface.H
}

func (s *softwareStorage) Pixels() *Surface { return s.surface }

func (s *softwareStorage) ApplyAlpha(a float32) bool {
	if s.surface == nil {
		return true
	}
	s.surface.ScaleAlpha(a)
	return true
}

func (s *softwareStorage) Release() {
	s.surface = nil
}
