package hoverfx

import (
	"image"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture is a live handle to pixel data that may not have arrived yet.
// A texture with no pixels samples as transparent black.
//
// Textures are mutated only on the update goroutine: the loader applies
// decoded pixels from Poll, video players from Update.
type Texture struct {
	// Source is the path or URL the texture was requested from.
	Source string
	// MagFilter and MinFilter select the filter used when the pixels are
	// resampled onto a surface. Both are ebiten.FilterLinear for every
	// texture created by hoverfx.
	MagFilter ebiten.Filter
	MinFilter ebiten.Filter

	pixels   *image.RGBA
	version  uint64
	disposed bool
}

// newTexture creates an empty, linear-filtered texture for source.
func newTexture(source string) *Texture {
	return &Texture{
		Source:    source,
		MagFilter: ebiten.FilterLinear,
		MinFilter: ebiten.FilterLinear,
	}
}

// Ready reports whether the texture holds pixel data.
func (t *Texture) Ready() bool {
	return t != nil && t.pixels != nil && !t.disposed
}

// Pixels returns the texture's premultiplied pixel data, or nil when the
// texture is not ready.
func (t *Texture) Pixels() *image.RGBA {
	if !t.Ready() {
		return nil
	}
	return t.pixels
}

// Size returns the pixel dimensions, or (0, 0) when the texture is not ready.
func (t *Texture) Size() (w, h int) {
	if !t.Ready() {
		return 0, 0
	}
	b := t.pixels.Bounds()
	return b.Dx(), b.Dy()
}

// Version is incremented every time the pixel data changes. Surfaces use it
// to decide when to re-upload.
func (t *Texture) Version() uint64 {
	return t.version
}

// IsDisposed reports whether Dispose has been called.
func (t *Texture) IsDisposed() bool {
	return t.disposed
}

// Dispose drops the pixel data. The texture samples as empty afterwards.
func (t *Texture) Dispose() {
	t.disposed = true
	t.pixels = nil
	t.version++
}

// setPixels replaces the pixel data. img is converted to premultiplied RGBA
// unless it already is one, in which case it is used without copying.
func (t *Texture) setPixels(img image.Image) {
	if t.disposed || img == nil {
		return
	}
	t.pixels = toRGBA(img)
	t.version++
}

// toRGBA returns img as an *image.RGBA with its origin at (0, 0).
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
