package hoverfx

import "github.com/hajimehoshi/ebiten/v2"

// --- Kage shader source ---
// Image slots: 0 = first asset, 1 = second asset, 2 = displacement map.
// All slots are surface-sized (Ebitengine requires equally sized sources).
// Sampling goes through normalized coordinates so each slot's atlas origin
// is honored, and edges are clamped.

const hoverShaderSrc = `//kage:unit pixels

package main

var Blend float
var Angle1 float
var Angle2 float
var Intensity1 float
var Intensity2 float
var Resolution vec4

// rotate multiplies v by the column-major matrix mat2(c, -s, s, c).
func rotate(v vec2, angle float) vec2 {
	s := sin(angle)
	c := cos(angle)
	return vec2(c*v.x+s*v.y, -s*v.x+c*v.y)
}

func sample0(uv vec2) vec4 {
	size := imageSrc0Size()
	origin := imageSrc0Origin()
	p := clamp(uv, vec2(0), vec2(1))*size - vec2(0.5)
	f := fract(p)
	p0 := clamp(floor(p), vec2(0), size-vec2(1)) + vec2(0.5)
	p1 := clamp(floor(p)+vec2(1), vec2(0), size-vec2(1)) + vec2(0.5)
	c00 := imageSrc0At(origin + p0)
	c10 := imageSrc0At(origin + vec2(p1.x, p0.y))
	c01 := imageSrc0At(origin + vec2(p0.x, p1.y))
	c11 := imageSrc0At(origin + p1)
	return mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y)
}

func sample1(uv vec2) vec4 {
	size := imageSrc1Size()
	origin := imageSrc1Origin()
	p := clamp(uv, vec2(0), vec2(1))*size - vec2(0.5)
	f := fract(p)
	p0 := clamp(floor(p), vec2(0), size-vec2(1)) + vec2(0.5)
	p1 := clamp(floor(p)+vec2(1), vec2(0), size-vec2(1)) + vec2(0.5)
	c00 := imageSrc1At(origin + p0)
	c10 := imageSrc1At(origin + vec2(p1.x, p0.y))
	c01 := imageSrc1At(origin + vec2(p0.x, p1.y))
	c11 := imageSrc1At(origin + p1)
	return mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y)
}

func sample2(uv vec2) vec4 {
	size := imageSrc2Size()
	origin := imageSrc2Origin()
	p := clamp(uv, vec2(0), vec2(1))*size - vec2(0.5)
	f := fract(p)
	p0 := clamp(floor(p), vec2(0), size-vec2(1)) + vec2(0.5)
	p1 := clamp(floor(p)+vec2(1), vec2(0), size-vec2(1)) + vec2(0.5)
	c00 := imageSrc2At(origin + p0)
	c10 := imageSrc2At(origin + vec2(p1.x, p0.y))
	c01 := imageSrc2At(origin + vec2(p0.x, p1.y))
	c11 := imageSrc2At(origin + p1)
	return mix(mix(c00, c10, f.x), mix(c01, c11, f.x), f.y)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	// Normalized surface coordinate; the quad covers the whole surface.
	uv := (dst.xy - imageDstOrigin()) / imageDstSize()
	disp := sample2(uv).rg

	// Cover-fit correction: Resolution.zw holds the (a1, a2) scale pair.
	st := (uv-vec2(0.5))*Resolution.zw + vec2(0.5)

	p1 := st + rotate(disp, Angle1)*Intensity1*Blend
	p2 := st + rotate(disp, Angle2)*Intensity2*(1-Blend)
	return mix(sample0(p1), sample1(p2), Blend)
}
`

// --- Lazy shader compilation (no sync.Once, effects run on the update goroutine) ---

var hoverShader *ebiten.Shader

func ensureHoverShader() *ebiten.Shader {
	if hoverShader == nil {
		s, err := ebiten.NewShader([]byte(hoverShaderSrc))
		if err != nil {
			panic("hoverfx: failed to compile displacement shader: " + err.Error())
		}
		hoverShader = s
	}
	return hoverShader
}
