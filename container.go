package hoverfx

// Container is the host region an effect renders into. Bounds is queried at
// construction and on every HandleResize; the effect never polls it.
type Container interface {
	Bounds() Rect
}

// SurfaceHost is implemented by containers that track the render surfaces
// mounted into them.
type SurfaceHost interface {
	AttachSurface(s Surface)
	DetachSurface(s Surface)
}

// Region is a movable, resizable rectangular container in screen space.
type Region struct {
	rect     Rect
	surfaces []Surface
}

// NewRegion creates a region at (x, y) with the given size.
func NewRegion(x, y, width, height float64) *Region {
	return &Region{rect: Rect{X: x, Y: y, Width: width, Height: height}}
}

// Bounds returns the region's screen-space rectangle.
func (r *Region) Bounds() Rect {
	return r.rect
}

// SetBounds replaces the region's rectangle. Effects mounted into the region
// pick up the new size on their next HandleResize.
func (r *Region) SetBounds(rect Rect) {
	r.rect = rect
}

// SetSize changes the region's size, keeping its position.
func (r *Region) SetSize(width, height float64) {
	r.rect.Width = width
	r.rect.Height = height
}

// MoveTo changes the region's position, keeping its size.
func (r *Region) MoveTo(x, y float64) {
	r.rect.X = x
	r.rect.Y = y
}

// AttachSurface records s as mounted into the region.
func (r *Region) AttachSurface(s Surface) {
	for _, existing := range r.surfaces {
		if existing == s {
			return
		}
	}
	r.surfaces = append(r.surfaces, s)
}

// DetachSurface removes s from the region's mounted surfaces.
func (r *Region) DetachSurface(s Surface) {
	for i, existing := range r.surfaces {
		if existing == s {
			copy(r.surfaces[i:], r.surfaces[i+1:])
			r.surfaces[len(r.surfaces)-1] = nil
			r.surfaces = r.surfaces[:len(r.surfaces)-1]
			return
		}
	}
}

// Surfaces returns the surfaces currently mounted into the region.
// The returned slice MUST NOT be mutated.
func (r *Region) Surfaces() []Surface {
	return r.surfaces
}
