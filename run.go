package hoverfx

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// FitContainer resizes a *Region container to fill the window whenever
	// the window size changes.
	FitContainer bool
	// Background fills the window before the effect is drawn.
	Background Color
	ShowFPS    bool
}

// Run opens a window and runs effect until the window is closed. Window
// resizes are forwarded to Effect.HandleResize.
func Run(effect *Effect, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &gameShell{effect: effect, cfg: cfg, bg: cfg.Background.toRGBA()}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return ebiten.RunGame(g)
}

// gameShell adapts an Effect to ebiten.Game.
type gameShell struct {
	effect *Effect
	cfg    RunConfig
	bg     color.RGBA
	fps    *fpsOverlay
	w, h   int
}

func (g *gameShell) Update() error {
	if err := g.effect.Update(); err != nil {
		return err
	}
	if g.fps != nil {
		g.fps.update(1/float64(max(ebiten.TPS(), 1)), g.effect)
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	if g.bg.A > 0 {
		screen.Fill(g.bg)
	}
	g.effect.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		first := g.w == 0 && g.h == 0
		g.w, g.h = outsideWidth, outsideHeight
		if g.cfg.FitContainer {
			if region, ok := g.effect.Config().Container.(*Region); ok {
				region.SetBounds(Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
				first = false
			}
		}
		if !first {
			g.effect.HandleResize()
		}
	}
	return outsideWidth, outsideHeight
}
