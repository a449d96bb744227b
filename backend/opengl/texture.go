package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/aethyra/gui"
)

// Backend uploads images into OpenGL textures. Texture sizes are rounded up
// to powers of two; the unused area stays transparent.
// It needs a current GL context.
type Backend struct {
	maxSize int
}

// NewBackend queries the texture size limit of the current context.
func NewBackend() *Backend {
	var size int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &size)
	gui.Logger().Info("opengl backend", "max_texture_size", size)
	return &Backend{maxSize: int(size)}
}

// Name implements gui.Backend.
func (*Backend) Name() string { return "opengl" }

// MaxTextureSize returns the largest texture edge the device accepts.
func (b *Backend) MaxTextureSize() int { return b.maxSize }

// Upload implements gui.Backend. The surface stays attached to the texture
// so pixel reads, resizing and merging keep working.
func (b *Backend) Upload(s *gui.Surface) (gui.Storage, error) {
	if s.W <= 0 || s.H <= 0 {
		return nil, gui.ErrInvalidSize
	}
	texW, texH := nextPowerOfTwo(s.W), nextPowerOfTwo(s.H)
	if b.maxSize > 0 && (texW > b.maxSize || texH > b.maxSize) {
		return nil, fmt.Errorf("texture %dx%d exceeds device limit %d: %w", texW, texH, b.maxSize, gui.ErrInvalidSize)
	}
	if s.Format != gui.FormatRGBA8888 {
		s = s.Convert(gui.FormatRGBA8888)
	}
	data := padPixels(s, texW, texH)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(texW), int32(texH), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		if code == gl.OUT_OF_MEMORY {
			return nil, fmt.Errorf("upload %dx%d: %w", s.W, s.H, gui.ErrOutOfMemory)
		}
		return nil, &gui.DeviceError{Op: "glTexImage2D", Code: code}
	}
	return &texture{id: id, texW: texW, texH: texH, surface: s}, nil
}

// padPixels copies s into the top-left corner of a texW x texH buffer.
func padPixels(s *gui.Surface, texW, texH int) []byte {
	if texW == s.W && texH == s.H && s.Stride == s.W*4 {
		return s.Pix
	}
	data := make([]byte, texW*texH*4)
	row := s.W * 4
	for y := 0; y < s.H; y++ {
		copy(data[y*texW*4:y*texW*4+row], s.Pix[y*s.Stride:y*s.Stride+row])
	}
	return data
}

// nextPowerOfTwo returns the smallest power of two >= v.
func nextPowerOfTwo(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// texture is a GL texture together with the surface it was made from.
type texture struct {
	id         uint32
	texW, texH int
	surface    *gui.Surface
}

func (t *texture) Size() (int, int) {
	if t.surface == nil {
		return 0, 0
	}
	return t.surface.W, t.surface.H
}

func (t *texture) Pixels() *gui.Surface { return t.surface }

// ApplyAlpha implements gui.Storage. Texture alpha is applied per draw
// through the vertex color.
func (t *texture) ApplyAlpha(float32) bool { return false }

func (t *texture) Texture() (uint32, int, int) { return t.id, t.texW, t.texH }

func (t *texture) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
	t.surface = nil
}
