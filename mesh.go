package hoverfx

import "github.com/hajimehoshi/ebiten/v2"

// quadIndices is the triangle list of a plane: two counter-clockwise
// triangles in world space.
var quadIndices = []uint16{0, 2, 1, 2, 3, 1}

// Plane is a flat quad of the container's size centred at the origin in
// world space. UV (0, 0) is the top-left corner.
type Plane struct {
	Width, Height float64

	local []ebiten.Vertex
	verts []ebiten.Vertex
}

// newPlane creates a w × h plane.
func newPlane(w, h float64) *Plane {
	p := &Plane{
		local: make([]ebiten.Vertex, 4),
		verts: make([]ebiten.Vertex, 4),
	}
	p.setSize(w, h)
	return p
}

// setSize rebuilds the plane's local vertices.
func (p *Plane) setSize(w, h float64) {
	p.Width, p.Height = w, h
	hw, hh := float32(w/2), float32(h/2)
	p.local[0] = ebiten.Vertex{DstX: -hw, DstY: hh, SrcX: 0, SrcY: 0}
	p.local[1] = ebiten.Vertex{DstX: hw, DstY: hh, SrcX: 1, SrcY: 0}
	p.local[2] = ebiten.Vertex{DstX: -hw, DstY: -hh, SrcX: 0, SrcY: 1}
	p.local[3] = ebiten.Vertex{DstX: hw, DstY: -hh, SrcX: 1, SrcY: 1}
	for i := range p.local {
		p.local[i].ColorR = 1
		p.local[i].ColorG = 1
		p.local[i].ColorB = 1
		p.local[i].ColorA = 1
	}
}

// project transforms the plane into surface device pixels through cam and
// returns the vertex and index buffers. The returned slices are reused
// across calls.
func (p *Plane) project(cam *Camera) ([]ebiten.Vertex, []uint16) {
	transformVertices(p.local, p.verts, cam.computeViewMatrix())
	return p.verts, quadIndices
}

// transformVertices applies an affine transform to src vertices, writing the
// result into dst. dst must be at least len(src) in length. SrcX/SrcY are
// carried unchanged.
func transformVertices(src, dst []ebiten.Vertex, m [6]float64) {
	for i := range src {
		s := &src[i]
		x, y := transformPoint(m, float64(s.DstX), float64(s.DstY))
		dst[i] = *s
		dst[i].DstX = float32(x)
		dst[i].DstY = float32(y)
	}
}
