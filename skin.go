package gui

import (
	"fmt"
	"io/fs"
	"sync"
)

type skinEntry struct {
	img     *Image
	holders int
}

// SkinManager shares skin images between widgets. An image is loaded on
// its first Acquire and released when the last holder calls Release.
// All images follow the opacity set with SetOpacity.
type SkinManager struct {
	mu      sync.Mutex
	files   fs.FS
	loader  *Loader
	entries map[string]*skinEntry
	opacity float32
}

// NewSkinManager creates a manager reading image files from files.
func NewSkinManager(files fs.FS, loader *Loader) *SkinManager {
	return &SkinManager{
		files:   files,
		loader:  loader,
		entries: make(map[string]*skinEntry),
		opacity: 1,
	}
}

// Acquire returns the image stored at path, loading it if nobody holds it.
// Every successful Acquire must be paired with a Release.
func (m *SkinManager) Acquire(path string) (*Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[path]; ok {
		e.holders++
		return e.img, nil
	}
	data, err := fs.ReadFile(m.files, path)
	if err != nil {
		return nil, fmt.Errorf("read skin image %s: %w", path, err)
	}
	img, err := m.loader.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load skin image %s: %w", path, err)
	}
	img.SetAlpha(m.opacity)
	m.entries[path] = &skinEntry{img: img, holders: 1}
	Logger().Debug("skin image loaded", "path", path, "w", img.Width(), "h", img.Height())
	return img, nil
}

// Release drops one hold on path. Unknown paths are ignored.
func (m *SkinManager) Release(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[path]
	if !ok {
		Logger().Warn("release of unheld skin image", "path", path)
		return
	}
	e.holders--
	if e.holders > 0 {
		return
	}
	delete(m.entries, path)
	e.img.DecRef()
}

// Holders returns the number of holds on path.
func (m *SkinManager) Holders(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[path]; ok {
		return e.holders
	}
	return 0
}

// SetOpacity applies a GUI-wide opacity to every loaded skin image and to
// images loaded later.
func (m *SkinManager) SetOpacity(a float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity = clampf(a, 0, 1)
	for _, e := range m.entries {
		e.img.SetAlpha(m.opacity)
	}
}

// Opacity returns the current skin opacity.
func (m *SkinManager) Opacity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

// ImageRect is a nine-slice border: four corners drawn once, four edges and
// the center tiled to fill a rectangle.
//
//	0 1 2
//	3 4 5
//	6 7 8
type ImageRect struct {
	Grid [9]*Image
}

// NewImageRect cuts img into nine sub-images. left, top, right and bottom
// are the border thicknesses.
func NewImageRect(img *Image, left, top, right, bottom int) (*ImageRect, error) {
	cw := img.Width() - left - right
	ch := img.Height() - top - bottom
	if left <= 0 || top <= 0 || right <= 0 || bottom <= 0 || cw <= 0 || ch <= 0 {
		return nil, fmt.Errorf("nine-slice %d,%d,%d,%d of %dx%d: %w",
			left, top, right, bottom, img.Width(), img.Height(), ErrInvalidSize)
	}
	xs := [3]int{0, left, left + cw}
	ws := [3]int{left, cw, right}
	ys := [3]int{0, top, top + ch}
	hs := [3]int{top, ch, bottom}

	r := &ImageRect{}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			sub, err := img.SubImage(xs[col], ys[row], ws[col], hs[row])
			if err != nil {
				r.Release()
				return nil, err
			}
			r.Grid[row*3+col] = sub
		}
	}
	return r, nil
}

// Release drops the sub-images.
func (r *ImageRect) Release() {
	for i, img := range r.Grid {
		if img != nil {
			img.DecRef()
			r.Grid[i] = nil
		}
	}
}

// SetAlpha sets the alpha of every slice.
func (r *ImageRect) SetAlpha(a float32) {
	for _, img := range r.Grid {
		if img != nil {
			img.SetAlpha(a)
		}
	}
}

// Draw fills area with the nine-slice border.
func (r *ImageRect) Draw(g Graphics, area Rect) {
	g0, g2, g6 := r.Grid[0], r.Grid[2], r.Grid[6]
	if g0 == nil {
		return
	}
	left, top := g0.Width(), g0.Height()
	right, bottom := g2.Width(), g6.Height()
	cw := area.W - left - right
	ch := area.H - top - bottom

	x0, x1, x2 := area.X, area.X+left, area.X+area.W-right
	y0, y1, y2 := area.Y, area.Y+top, area.Y+area.H-bottom

	g.DrawImagePattern(r.Grid[4], x1, y1, cw, ch)

	g.DrawImagePattern(r.Grid[1], x1, y0, cw, top)
	g.DrawImagePattern(r.Grid[7], x1, y2, cw, bottom)
	g.DrawImagePattern(r.Grid[3], x0, y1, left, ch)
	g.DrawImagePattern(r.Grid[5], x2, y1, right, ch)

	g.DrawImage(g0, 0, 0, x0, y0, left, top)
	g.DrawImage(g2, 0, 0, x2, y0, right, top)
	g.DrawImage(g6, 0, 0, x0, y2, left, bottom)
	g.DrawImage(r.Grid[8], 0, 0, x2, y2, r.Grid[8].Width(), bottom)
}
