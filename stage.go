package hoverfx

import (
	"log/slog"
	"time"
)

// Texture slots of the uniform record.
const (
	slotTexture1 = 0
	slotTexture2 = 1
)

// stage owns the surface, camera, plane and the uniform record of one effect.
// All uniform mutation goes through its methods.
type stage struct {
	surface    Surface
	camera     *Camera
	plane      *Plane
	uniforms   Uniforms
	frame      Frame
	clearColor Color
	mode       RenderMode

	imagesRatio float64
	pixelRatio  float64
	width       float64
	height      float64

	draws    int
	drawTime time.Duration
	debug    bool
	disposed bool
}

// newStage sizes a surface to the container and initialises the uniforms.
// It does not draw; callers render once textures are bound.
func newStage(cfg Config, pixelRatio float64, factory SurfaceFactory) *stage {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	if factory == nil {
		factory = NewSurface
	}
	b := cfg.Container.Bounds()
	s := &stage{
		clearColor:  cfg.ClearColor,
		imagesRatio: cfg.ImagesRatio,
		pixelRatio:  pixelRatio,
		width:       b.Width,
		height:      b.Height,
		camera:      newCamera(b.Width, b.Height, pixelRatio),
		plane:       newPlane(b.Width, b.Height),
	}
	if cfg.Kind == AssetVideo {
		s.mode = RenderContinuous
	}
	s.uniforms.Angle1 = cfg.Angle1
	s.uniforms.Angle2 = cfg.Angle2
	s.uniforms.Intensity1 = cfg.Intensity1
	s.uniforms.Intensity2 = cfg.Intensity2
	s.updateResolution()

	sw, sh := s.camera.SurfaceSize()
	s.surface = factory(sw, sh)
	return s
}

// updateResolution recomputes the cover-fit scale and stores it with the
// container size in the Resolution uniform.
func (s *stage) updateResolution() {
	a1, a2 := ComputeScale(s.width, s.height, s.imagesRatio)
	s.uniforms.Resolution = [4]float32{float32(s.width), float32(s.height), float32(a1), float32(a2)}
}

// Render draws the plane with the current uniforms exactly once.
func (s *stage) Render() {
	if s.disposed {
		return
	}
	start := time.Now()
	s.frame.Uniforms = s.uniforms
	s.frame.ClearColor = s.clearColor
	s.frame.Vertices, s.frame.Indices = s.plane.project(s.camera)
	s.surface.Draw(&s.frame)
	s.draws++
	s.drawTime = time.Since(start)

	if s.debug {
		Logger().Debug("hoverfx: draw",
			slog.Int("draws", s.draws),
			slog.Duration("time", s.drawTime),
			slog.Float64("blend", s.uniforms.Blend))
	}
}

// Tick redraws once per frame in continuous mode. It is a no-op in
// on-demand mode.
func (s *stage) Tick() {
	if s.mode == RenderContinuous {
		s.Render()
	}
}

// Resize adapts the stage to a container of size w × h and redraws.
func (s *stage) Resize(w, h float64) {
	if s.disposed {
		return
	}
	s.width, s.height = w, h
	s.updateResolution()
	s.camera.setFrustum(w, h, s.pixelRatio)
	s.plane.setSize(w, h)
	sw, sh := s.camera.SurfaceSize()
	s.surface.Resize(sw, sh)
	s.Render()
}

// SetBlend sets the blend factor, clamped to [0, 1].
func (s *stage) SetBlend(v float64) {
	s.uniforms.Blend = clamp(v, 0, 1)
}

// Blend returns the current blend factor.
func (s *stage) Blend() float64 {
	return s.uniforms.Blend
}

// SetAssetTexture binds t to texture slot 0 or 1.
func (s *stage) SetAssetTexture(slot int, t *Texture) {
	switch slot {
	case slotTexture1:
		s.uniforms.Texture1 = t
	case slotTexture2:
		s.uniforms.Texture2 = t
	}
}

// AssetTexture returns the texture bound to slot 0 or 1.
func (s *stage) AssetTexture(slot int) *Texture {
	switch slot {
	case slotTexture1:
		return s.uniforms.Texture1
	case slotTexture2:
		return s.uniforms.Texture2
	}
	return nil
}

// SetDisplacement binds the displacement map.
func (s *stage) SetDisplacement(t *Texture) {
	s.uniforms.Displacement = t
}

// Scale returns the current cover-fit scale pair.
func (s *stage) Scale() (a1, a2 float64) {
	return float64(s.uniforms.Resolution[2]), float64(s.uniforms.Resolution[3])
}

// Dispose releases the surface. Textures belong to the loader.
func (s *stage) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.surface.Dispose()
}

// blendProperty exposes the stage's blend factor to a Tweener.
type blendProperty struct {
	s *stage
}

func (p blendProperty) Value() float64     { return p.s.Blend() }
func (p blendProperty) SetValue(v float64) { p.s.SetBlend(v) }
