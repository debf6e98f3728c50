package hoverfx

import "math"

// Camera is an orthographic projection centred at the origin. World units are
// container pixels with Y pointing up; the camera maps them to surface device
// pixels with Y pointing down.
type Camera struct {
	Left, Right, Top, Bottom float64
	// PixelRatio is the number of device pixels per world unit.
	PixelRatio float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// newCamera creates a camera spanning [-w/2, w/2] × [-h/2, h/2].
func newCamera(w, h, pixelRatio float64) *Camera {
	c := &Camera{}
	c.setFrustum(w, h, pixelRatio)
	return c
}

// setFrustum rebuilds the frustum for a container of size w × h.
func (c *Camera) setFrustum(w, h, pixelRatio float64) {
	c.Left, c.Right = -w/2, w/2
	c.Top, c.Bottom = h/2, -h/2
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	c.PixelRatio = pixelRatio
	c.dirty = true
}

// Width and Height return the frustum extent in world units.
func (c *Camera) Width() float64  { return c.Right - c.Left }
func (c *Camera) Height() float64 { return c.Top - c.Bottom }

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// sx = a*x + c*y + tx, sy = b*x + d*y + ty
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	pr := c.PixelRatio
	c.viewMatrix = [6]float64{pr, 0, 0, -pr, -c.Left * pr, c.Top * pr}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToSurface converts world coordinates to surface device pixels.
func (c *Camera) WorldToSurface(wx, wy float64) (sx, sy float64) {
	m := c.computeViewMatrix()
	return transformPoint(m, wx, wy)
}

// SurfaceToWorld converts surface device pixels to world coordinates.
func (c *Camera) SurfaceToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// SurfaceSize returns the device-pixel size the frustum maps onto, rounded
// up so no edge pixel is lost.
func (c *Camera) SurfaceSize() (w, h int) {
	return int(math.Ceil(c.Width() * c.PixelRatio)), int(math.Ceil(c.Height() * c.PixelRatio))
}

func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// invertAffine returns the inverse of m. A singular matrix yields the
// identity.
func invertAffine(m [6]float64) [6]float64 {
	a, b, c, d, tx, ty := m[0], m[1], m[2], m[3], m[4], m[5]
	det := a*d - b*c
	if det == 0 {
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
	inv := 1 / det
	return [6]float64{
		d * inv,
		-b * inv,
		-c * inv,
		a * inv,
		(c*ty - d*tx) * inv,
		(b*tx - a*ty) * inv,
	}
}
