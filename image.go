package gui

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// sharedStorage counts the images (owner plus sub-images) holding a Storage.
// The storage is released when the last holder lets go, so a sub-image that
// outlives its parent's last reference stays valid.
//
// ownerAlpha is the owner's alpha when the storage could not bake it into
// its pixels; views multiply it in at draw time.
type sharedStorage struct {
	Storage
	holders    int
	ownerAlpha float32
}

func (s *sharedStorage) acquire() {
	s.holders++
}

func (s *sharedStorage) drop() {
	s.holders--
	if s.holders == 0 {
		s.Storage.Release()
	}
}

// Image is a reference-counted image resource. It is either the owner of a
// Storage or a sub-image: a rectangular view that shares the storage of the
// image it was cut from.
//
// A new image starts with one reference. IncRef and DecRef adjust it; the
// image's hold on the storage is dropped when the count reaches zero.
type Image struct {
	refs    int
	bounds  Rect
	store   *sharedStorage
	backend Backend
	alpha   float32
	baked   bool // alpha was applied to stored pixels
	sub     bool
}

func newImage(backend Backend, st Storage) *Image {
	w, h := st.Size()
	return &Image{
		refs:    1,
		bounds:  Rect{W: w, H: h},
		store:   &sharedStorage{Storage: st, holders: 1, ownerAlpha: 1},
		backend: backend,
		alpha:   1,
	}
}

// Width returns the logical width.
func (img *Image) Width() int { return img.bounds.W }

// Height returns the logical height.
func (img *Image) Height() int { return img.bounds.H }

// Bounds returns the region of the backing storage this image covers.
func (img *Image) Bounds() Rect { return img.bounds }

// Alpha returns the current alpha multiplier. 1 means undisturbed.
func (img *Image) Alpha() float32 { return img.alpha }

// Storage returns the backing storage.
func (img *Image) Storage() Storage { return img.store.Storage }

// IsSubImage reports whether the image is a view into another image.
func (img *Image) IsSubImage() bool { return img.sub }

// Refs returns the current reference count.
func (img *Image) Refs() int { return img.refs }

// IncRef adds a reference.
func (img *Image) IncRef() {
	img.refs++
}

// DecRef drops a reference and releases the image's hold on its storage
// when none remain.
func (img *Image) DecRef() {
	if img.refs <= 0 {
		Logger().Warn("image released too many times", "w", img.bounds.W, "h", img.bounds.H)
		return
	}
	img.refs--
	if img.refs == 0 {
		img.store.drop()
	}
}

// drawAlpha is the alpha renderers must still apply when drawing. Views
// also carry the owner's alpha when it is not in the pixels.
func (img *Image) drawAlpha() float32 {
	if img.sub {
		return img.alpha * img.store.ownerAlpha
	}
	if img.baked {
		return 1
	}
	return img.alpha
}

// PixelAt returns the pixel at (x, y) relative to the image's bounds.
func (img *Image) PixelAt(x, y int) (color.NRGBA, error) {
	px := img.store.Pixels()
	if px == nil {
		return color.NRGBA{}, ErrNoPixels
	}
	if x < 0 || y < 0 || x >= img.bounds.W || y >= img.bounds.H {
		return color.NRGBA{}, fmt.Errorf("pixel (%d,%d) outside %dx%d: %w", x, y, img.bounds.W, img.bounds.H, ErrInvalidSize)
	}
	return px.PixelAt(img.bounds.X+x, img.bounds.Y+y), nil
}

// SubImage returns a view of the rectangle (x, y, w, h) of this image.
// The view shares storage and keeps it alive until the view is released.
func (img *Image) SubImage(x, y, w, h int) (*Image, error) {
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x+w > img.bounds.W || y+h > img.bounds.H {
		return nil, fmt.Errorf("sub-image %dx%d+%d+%d of %dx%d: %w", w, h, x, y, img.bounds.W, img.bounds.H, ErrInvalidSize)
	}
	img.store.acquire()
	return &Image{
		refs:    1,
		bounds:  Rect{X: img.bounds.X + x, Y: img.bounds.Y + y, W: w, H: h},
		store:   img.store,
		backend: img.backend,
		alpha:   1,
		sub:     true,
	}, nil
}

// SetAlpha sets the alpha multiplier (0..1). Owning software images rescale
// their pixel alpha from the load-time snapshot. Sub-images and texture
// images leave storage untouched and are blended at draw time. Either way
// the owner's alpha reaches its sub-images.
func (img *Image) SetAlpha(a float32) {
	a = clampf(a, 0, 1)
	if a == img.alpha {
		return
	}
	img.alpha = a
	if img.sub {
		return
	}
	img.baked = img.store.ApplyAlpha(a)
	if img.baked {
		img.store.ownerAlpha = 1
	} else {
		img.store.ownerAlpha = a
	}
}

// Resize returns a smoothly scaled copy. When the size is unchanged the same
// instance is returned and no reference is added.
func (img *Image) Resize(w, h int) (*Image, error) {
	if w == img.bounds.W && h == img.bounds.H {
		return img, nil
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("resize to %dx%d: %w", w, h, ErrInvalidSize)
	}
	px := img.store.Pixels()
	if px == nil {
		return nil, ErrNoPixels
	}
	b := img.bounds
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Rect, px, image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H), draw.Src, nil)
	return img.upload(SurfaceFromImage(dst))
}

// Merge composites other onto a copy of this image with other's top-left
// corner at (x, y) and returns the result as a new image.
func (img *Image) Merge(other *Image, x, y int) (*Image, error) {
	dst, err := img.copySurface()
	if err != nil {
		return nil, err
	}
	src := other.store.Pixels()
	if src == nil {
		return nil, ErrNoPixels
	}
	ob := other.bounds
	for sy := 0; sy < ob.H; sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.H {
			continue
		}
		for sx := 0; sx < ob.W; sx++ {
			dx := x + sx
			if dx < 0 || dx >= dst.W {
				continue
			}
			s := src.PixelAt(ob.X+sx, ob.Y+sy)
			dst.SetPixel(dx, dy, mergePixel(dst.PixelAt(dx, dy), s))
		}
	}
	return img.upload(dst)
}

// copySurface copies the image's region into a new RGBA8888 surface.
func (img *Image) copySurface() (*Surface, error) {
	px := img.store.Pixels()
	if px == nil {
		return nil, ErrNoPixels
	}
	b := img.bounds
	out := NewSurface(b.W, b.H, FormatRGBA8888)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			out.SetPixel(x, y, px.PixelAt(b.X+x, b.Y+y))
		}
	}
	return out, nil
}

func (img *Image) upload(s *Surface) (*Image, error) {
	st, err := img.backend.Upload(s)
	if err != nil {
		return nil, err
	}
	return newImage(img.backend, st), nil
}

// mergePixel composites s over d. An opaque source replaces, a transparent
// source keeps the destination unless that is empty too, and anything in
// between is weighted by source alpha and the destination alpha the source
// leaves uncovered. The result alpha is the larger of the two.
func mergePixel(d, s color.NRGBA) color.NRGBA {
	switch {
	case s.A == 255:
		return s
	case s.A == 0 && d.A == 0:
		return s
	case s.A == 0:
		return d
	}
	sa := uint32(s.A)
	dw := uint32(d.A) * (255 - sa) / 255
	total := sa + dw
	mix := func(sc, dc uint8) uint8 {
		return uint8((uint32(sc)*sa + uint32(dc)*dw + total/2) / total)
	}
	return color.NRGBA{
		R: mix(s.R, d.R),
		G: mix(s.G, d.G),
		B: mix(s.B, d.B),
		A: max(s.A, d.A),
	}
}
