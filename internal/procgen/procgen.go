// Package procgen generates placeholder assets for the examples and tests:
// displacement maps, gradients and short animated clips, plus a Fetcher
// that serves them by name.
package procgen

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"io/fs"
	"math"
	"math/rand/v2"
)

// Displacement returns a smooth grayscale value-noise map. cell is the noise
// lattice spacing in pixels; larger cells give broader swirls.
func Displacement(w, h, cell int, seed uint64) *image.Gray {
	if cell < 2 {
		cell = 2
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	gw, gh := w/cell+2, h/cell+2
	lattice := make([]float64, gw*gh)
	for i := range lattice {
		lattice[i] = rng.Float64()
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		fy := float64(y) / float64(cell)
		y0 := int(fy)
		ty := smoothstep(fy - float64(y0))
		for x := 0; x < w; x++ {
			fx := float64(x) / float64(cell)
			x0 := int(fx)
			tx := smoothstep(fx - float64(x0))

			a := lattice[y0*gw+x0]
			b := lattice[y0*gw+x0+1]
			c := lattice[(y0+1)*gw+x0]
			d := lattice[(y0+1)*gw+x0+1]
			v := lerp(lerp(a, b, tx), lerp(c, d, tx), ty)
			img.Pix[y*img.Stride+x] = uint8(math.Round(v * 255))
		}
	}
	return img
}

// Gradient returns a diagonal two-colour gradient with soft diagonal bands.
func Gradient(w, h int, from, to color.RGBA, bands int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := (float64(x)/float64(max(w-1, 1)) + float64(y)/float64(max(h-1, 1))) / 2
			if bands > 0 {
				t += 0.08 * math.Sin(t*float64(bands)*2*math.Pi)
			}
			t = min(max(t, 0), 1)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(lerp(float64(from.R), float64(to.R), t)),
				G: uint8(lerp(float64(from.G), float64(to.G), t)),
				B: uint8(lerp(float64(from.B), float64(to.B), t)),
				A: 255,
			})
		}
	}
	return img
}

// Pulse returns an animated GIF of a disc pulsing over a gradient.
func Pulse(w, h, frames int, from, to color.RGBA) *gif.GIF {
	g := &gif.GIF{Config: image.Config{Width: w, Height: h}}
	bg := Gradient(w, h, from, to, 0)
	cx, cy := float64(w)/2, float64(h)/2
	for f := 0; f < frames; f++ {
		r := float64(min(w, h)) * (0.2 + 0.15*math.Sin(float64(f)/float64(frames)*2*math.Pi))
		frame := image.NewPaletted(image.Rect(0, 0, w, h), palette.Plan9)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx, dy := float64(x)-cx, float64(y)-cy
				if dx*dx+dy*dy <= r*r {
					frame.Set(x, y, color.White)
				} else {
					frame.Set(x, y, bg.At(x, y))
				}
			}
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, 4)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	return g
}

func smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("procgen: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeGIF encodes g as GIF bytes.
func EncodeGIF(g *gif.GIF) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("procgen: encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

// Assets serves encoded assets by name. Its Fetch method satisfies
// hoverfx.Fetcher.
type Assets map[string][]byte

// Fetch returns the named asset or fs.ErrNotExist.
func (a Assets) Fetch(_ context.Context, source string) (io.ReadCloser, error) {
	data, ok := a[source]
	if !ok {
		return nil, fmt.Errorf("procgen: %s: %w", source, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Demo returns a displacement map "disp.png" and the images "a.png",
// "b.png" and "c.png", all w × h.
func Demo(w, h int) (Assets, error) {
	imgs := map[string]image.Image{
		"disp.png": Displacement(w, h, max(w/6, 2), 7),
		"a.png":    Gradient(w, h, color.RGBA{R: 236, G: 94, B: 82, A: 255}, color.RGBA{R: 251, G: 196, B: 99, A: 255}, 3),
		"b.png":    Gradient(w, h, color.RGBA{R: 36, G: 59, B: 85, A: 255}, color.RGBA{R: 20, G: 30, B: 48, A: 255}, 5),
		"c.png":    Gradient(w, h, color.RGBA{R: 67, G: 160, B: 71, A: 255}, color.RGBA{R: 200, G: 230, B: 201, A: 255}, 2),
	}
	assets := make(Assets, len(imgs))
	for name, img := range imgs {
		data, err := EncodePNG(img)
		if err != nil {
			return nil, err
		}
		assets[name] = data
	}
	return assets, nil
}
