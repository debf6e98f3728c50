package hoverfx

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws the current FPS, TPS and draw count in the top-left
// corner of the window. The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func newFPSOverlay() *fpsOverlay {
	// 120x48 is enough for "FPS: 60.0\nTPS: 60.0\nDraws: 123456"
	return &fpsOverlay{img: ebiten.NewImage(120, 48), elapsed: 0.5}
}

func (o *fpsOverlay) update(dt float64, e *Effect) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nDraws: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), e.Stats().Draws))
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
