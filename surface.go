package hoverfx

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Uniforms is the shader state of a stage. The stage owns the record; every
// mutation goes through a stage method.
type Uniforms struct {
	Blend        float64
	Angle1       float64
	Angle2       float64
	Intensity1   float64
	Intensity2   float64
	Texture1     *Texture
	Texture2     *Texture
	Displacement *Texture
	// Resolution is (container width, container height, a1, a2).
	Resolution [4]float32
}

// Frame is everything a Surface needs to issue one draw.
type Frame struct {
	Uniforms   Uniforms
	Vertices   []ebiten.Vertex
	Indices    []uint16
	ClearColor Color
}

// Surface is an offscreen render target bound to a container.
type Surface interface {
	// Resize reallocates the surface at the given device-pixel size.
	Resize(width, height int)
	// Size returns the current device-pixel size.
	Size() (width, height int)
	// Draw clears the surface and draws the frame once.
	Draw(f *Frame)
	// Image returns the rendered image, or nil for surfaces that do not
	// render to an Ebitengine image.
	Image() *ebiten.Image
	// Dispose releases the surface and any GPU resources it owns.
	Dispose()
}

// SurfaceFactory creates a surface of the given device-pixel size.
type SurfaceFactory func(width, height int) Surface

// textureSlot caches a texture's uploaded pixels and its surface-sized
// resampled copy.
type textureSlot struct {
	version uint64
	src     *ebiten.Image
	img     *ebiten.Image
	srcW    int
	srcH    int
	dirty   bool
}

// ebitenSurface renders frames with the displacement shader into a
// persistent offscreen *ebiten.Image.
type ebitenSurface struct {
	image *ebiten.Image
	w, h  int

	slots map[*Texture]*textureSlot

	uniforms   map[string]any
	resolution []float32
	shaderOp   ebiten.DrawTrianglesShaderOptions
	imgOp      ebiten.DrawImageOptions
}

// NewSurface creates an Ebitengine-backed surface of the given device-pixel
// size. It is the default SurfaceFactory.
func NewSurface(width, height int) Surface {
	width, height = max(width, 1), max(height, 1)
	s := &ebitenSurface{
		image:      ebiten.NewImage(width, height),
		w:          width,
		h:          height,
		slots:      make(map[*Texture]*textureSlot),
		uniforms:   make(map[string]any, 6),
		resolution: make([]float32, 4),
	}
	s.uniforms["Resolution"] = s.resolution
	return s
}

func (s *ebitenSurface) Image() *ebiten.Image { return s.image }

func (s *ebitenSurface) Size() (int, int) { return s.w, s.h }

// Resize deallocates the old image and creates a new one at the given
// dimensions. Resampled texture copies are rebuilt on the next draw.
func (s *ebitenSurface) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == s.w && height == s.h && s.image != nil {
		return
	}
	if s.image != nil {
		s.image.Deallocate()
	}
	s.image = ebiten.NewImage(width, height)
	s.w, s.h = width, height
	for _, slot := range s.slots {
		if slot.img != nil {
			slot.img.Deallocate()
			slot.img = nil
		}
		slot.dirty = true
	}
}

func (s *ebitenSurface) Draw(f *Frame) {
	if s.image == nil {
		return
	}
	s.pruneSlots()

	s.image.Fill(f.ClearColor.toRGBA())

	u := &f.Uniforms
	s.uniforms["Blend"] = float32(u.Blend)
	s.uniforms["Angle1"] = float32(u.Angle1)
	s.uniforms["Angle2"] = float32(u.Angle2)
	s.uniforms["Intensity1"] = float32(u.Intensity1)
	s.uniforms["Intensity2"] = float32(u.Intensity2)
	copy(s.resolution, u.Resolution[:])

	s.shaderOp.Images[0] = s.bind(u.Texture1)
	s.shaderOp.Images[1] = s.bind(u.Texture2)
	s.shaderOp.Images[2] = s.bind(u.Displacement)
	s.shaderOp.Uniforms = s.uniforms
	s.shaderOp.Blend = ebiten.BlendSourceOver

	s.image.DrawTrianglesShader(f.Vertices, f.Indices, ensureHoverShader(), &s.shaderOp)
}

// bind returns the surface-sized copy of t, uploading and resampling it when
// its pixels or the surface size changed. Returns nil for empty textures,
// which the shader samples as transparent.
func (s *ebitenSurface) bind(t *Texture) *ebiten.Image {
	if !t.Ready() {
		return nil
	}
	slot := s.slots[t]
	if slot == nil {
		slot = &textureSlot{}
		s.slots[t] = slot
	}

	if slot.src == nil || slot.version != t.Version() {
		px := t.Pixels()
		w, h := px.Bounds().Dx(), px.Bounds().Dy()
		if slot.src != nil && slot.srcW == w && slot.srcH == h {
			slot.src.WritePixels(px.Pix)
		} else {
			if slot.src != nil {
				slot.src.Deallocate()
			}
			slot.src = ebiten.NewImageFromImage(px)
			slot.srcW, slot.srcH = w, h
		}
		slot.version = t.Version()
		slot.dirty = true
	}

	if slot.img == nil {
		slot.img = ebiten.NewImage(s.w, s.h)
		slot.dirty = true
	}
	if slot.dirty {
		sx := float64(s.w) / float64(slot.srcW)
		sy := float64(s.h) / float64(slot.srcH)
		s.imgOp.GeoM.Reset()
		s.imgOp.GeoM.Scale(sx, sy)
		s.imgOp.ColorScale.Reset()
		s.imgOp.Blend = ebiten.BlendCopy
		if sx*sy >= 1 {
			s.imgOp.Filter = t.MagFilter
		} else {
			s.imgOp.Filter = t.MinFilter
		}
		slot.img.Clear()
		slot.img.DrawImage(slot.src, &s.imgOp)
		slot.dirty = false
	}
	return slot.img
}

// pruneSlots releases cached copies of disposed textures.
func (s *ebitenSurface) pruneSlots() {
	for t, slot := range s.slots {
		if t.IsDisposed() {
			slot.release()
			delete(s.slots, t)
		}
	}
}

func (slot *textureSlot) release() {
	if slot.src != nil {
		slot.src.Deallocate()
		slot.src = nil
	}
	if slot.img != nil {
		slot.img.Deallocate()
		slot.img = nil
	}
}

// Dispose deallocates the surface image and every cached texture copy. The
// surface must not be used after calling Dispose.
func (s *ebitenSurface) Dispose() {
	for t, slot := range s.slots {
		slot.release()
		delete(s.slots, t)
	}
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R*c.A, 0, 1) * 255),
		G: uint8(clamp(c.G*c.A, 0, 1) * 255),
		B: uint8(clamp(c.B*c.A, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}
