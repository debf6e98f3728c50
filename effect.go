package hoverfx

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EffectOption configures the host integration of an effect.
type EffectOption func(*effectOptions)

type effectOptions struct {
	surfaceFactory SurfaceFactory
	fetcher        Fetcher
	videoDecoder   VideoDecoder
	input          InputSource
	sink           EventSink
	deviceScale    float64
}

// WithSurfaceFactory replaces the Ebitengine surface with a custom one.
func WithSurfaceFactory(f SurfaceFactory) EffectOption {
	return func(o *effectOptions) { o.surfaceFactory = f }
}

// WithFS reads non-URL asset sources from fsys instead of the local disk.
func WithFS(fsys fs.FS) EffectOption {
	return func(o *effectOptions) { o.fetcher = FSFetcher(fsys) }
}

// WithFetcher sets the Fetcher used for every asset source.
func WithFetcher(f Fetcher) EffectOption {
	return func(o *effectOptions) { o.fetcher = f }
}

// WithVideoDecoder sets the decoder used for video assets. The default is
// DecodeGIF.
func WithVideoDecoder(d VideoDecoder) EffectOption {
	return func(o *effectOptions) { o.videoDecoder = d }
}

// WithInputSource sets where pointer and touch state is read from.
func WithInputSource(src InputSource) EffectOption {
	return func(o *effectOptions) { o.input = src }
}

// WithEventSink receives transition start and end events.
func WithEventSink(s EventSink) EffectOption {
	return func(o *effectOptions) { o.sink = s }
}

// WithDeviceScale sets the device pixel ratio used when Options.PixelRatio
// is not given, instead of asking the monitor.
func WithDeviceScale(scale float64) EffectOption {
	return func(o *effectOptions) { o.deviceScale = scale }
}

// Effect renders a displaced cross-fade between assets into a surface bound
// to a container. All methods must be called from the update goroutine.
// After Dispose every method is a no-op.
type Effect struct {
	cfg          Config
	stage        *stage
	loader       *loader
	tweens       *Tweener
	ctrl         transitionController
	binder       *binder
	assets       []*Texture
	players      []*VideoPlayer
	displacement *Texture

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	screenshotQueue []string
	testRunner      *TestRunner
	drawOp          ebiten.DrawImageOptions
	frame           uint64
	debug           bool
	disposed        bool
}

var _ Controller = (*Effect)(nil)

// New resolves opts, creates the surface, starts loading every asset and
// binds hover input when enabled. On a configuration error New logs a
// warning, creates nothing and returns the error.
func New(opts Options, options ...EffectOption) (*Effect, error) {
	cfg, err := Resolve(opts)
	if err != nil {
		Logger().Warn("hoverfx: effect not created", slog.Any("error", err))
		return nil, err
	}

	var o effectOptions
	for _, fn := range options {
		fn(&o)
	}

	pixelRatio := cfg.PixelRatio
	if pixelRatio <= 0 {
		pixelRatio = o.deviceScale
	}
	if pixelRatio <= 0 {
		pixelRatio = deviceScaleFactor()
	}

	e := &Effect{
		cfg:           cfg,
		tweens:        NewTweener(),
		loader:        newLoader(o.fetcher, o.videoDecoder),
		binder:        newBinder(cfg.Container, o.input),
		ScreenshotDir: "screenshots",
	}
	e.stage = newStage(cfg, pixelRatio, o.surfaceFactory)

	e.displacement = e.loader.LoadTexture(cfg.Displacement, e.onTextureLoaded)
	e.assets = make([]*Texture, len(cfg.Assets))
	for i, src := range cfg.Assets {
		if cfg.Kind == AssetVideo {
			e.assets[i] = newTexture(src)
			e.players = append(e.players, e.loader.LoadVideo(src, e.onFirstFrame(i)))
			continue
		}
		e.assets[i] = e.loader.LoadTexture(src, e.onTextureLoaded)
	}

	e.stage.SetDisplacement(e.displacement)
	e.stage.SetAssetTexture(slotTexture1, e.assets[0])
	e.stage.SetAssetTexture(slotTexture2, e.assets[1])

	base := newTransitionBase(cfg, e.stage, e.tweens, o.sink)
	if cfg.Mode == ModeCarousel {
		e.ctrl = newCarousel(base, e.assets)
	} else {
		e.ctrl = newPairController(base)
	}

	if cfg.Hover {
		e.bindHover()
	}
	if host, ok := cfg.Container.(SurfaceHost); ok {
		host.AttachSurface(e.stage.surface)
	}

	e.stage.Render()

	sw, sh := e.stage.surface.Size()
	Logger().Info("hoverfx: hover effect by Robin Delaporte: https://github.com/robin-dela/hover-effect",
		slog.String("mode", modeName(cfg.Mode)),
		slog.String("kind", cfg.Kind.String()),
		slog.Int("assets", len(cfg.Assets)),
		slog.Int("surfaceWidth", sw),
		slog.Int("surfaceHeight", sh))
	return e, nil
}

func modeName(m Mode) string {
	if m == ModeCarousel {
		return "carousel"
	}
	return "pair"
}

func deviceScaleFactor() float64 {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}

// bindHover maps enter and touch start to Next, leave and touch end to
// Previous.
func (e *Effect) bindHover() {
	next := func(PointerContext) { e.Next() }
	prev := func(PointerContext) { e.Previous() }
	e.binder.OnPointerEnter(next)
	e.binder.OnTouchStart(next)
	e.binder.OnPointerLeave(prev)
	e.binder.OnTouchEnd(prev)
}

func (e *Effect) onTextureLoaded(*Texture) {
	e.stage.Render()
}

// onFirstFrame swaps the freshly created video texture for asset i into the
// asset list and into whichever stage slot still shows the placeholder.
func (e *Effect) onFirstFrame(i int) func(*VideoPlayer, *Texture) {
	return func(_ *VideoPlayer, tex *Texture) {
		old := e.assets[i]
		e.assets[i] = tex
		for _, slot := range [...]int{slotTexture1, slotTexture2} {
			if e.stage.AssetTexture(slot) == old {
				e.stage.SetAssetTexture(slot, tex)
			}
		}
		old.Dispose()
		e.stage.Render()
	}
}

// Next reveals the second asset (pair mode) or moves to the next asset
// (carousel mode).
func (e *Effect) Next() {
	if e.disposed {
		return
	}
	e.ctrl.Next()
}

// Previous reverts to the first asset (pair mode) or moves to the previous
// asset (carousel mode).
func (e *Effect) Previous() {
	if e.disposed {
		return
	}
	e.ctrl.Previous()
}

// TransitionTo starts a transition to the asset at index lasting duration
// seconds. In carousel mode the request is ignored, returning false, while
// another transition runs, for an out-of-range index, or for the current
// asset. In pair mode index must be 0 or 1.
func (e *Effect) TransitionTo(index int, duration float64) bool {
	if e.disposed {
		return false
	}
	return e.ctrl.TransitionTo(index, float32(duration))
}

// Update advances input, loading, playback and animation by one tick.
// It implements the Update half of ebiten.Game.
func (e *Effect) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	e.advance(1 / float64(tps))
	return nil
}

// advance runs one frame of dt seconds.
func (e *Effect) advance(dt float64) {
	if e.disposed {
		return
	}
	e.frame++
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.loader.Poll()
	e.binder.process()
	step := time.Duration(dt * float64(time.Second))
	for _, p := range e.players {
		p.Update(step)
	}
	e.tweens.Update(float32(dt))
	e.stage.Tick()
	if e.debug {
		e.debugLog()
	}
}

// Draw composites the effect surface onto screen at the container's
// position, scaled back from device pixels.
func (e *Effect) Draw(screen *ebiten.Image) {
	if e.disposed {
		return
	}
	img := e.stage.surface.Image()
	if img == nil {
		return
	}
	b := e.cfg.Container.Bounds()
	inv := 1 / e.stage.pixelRatio
	e.drawOp.GeoM.Reset()
	e.drawOp.GeoM.Scale(inv, inv)
	e.drawOp.GeoM.Translate(b.X, b.Y)
	e.drawOp.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &e.drawOp)
	e.flushScreenshots(img)
}

// HandleResize re-reads the container bounds and adapts the surface, the
// scale uniform and the geometry before redrawing.
func (e *Effect) HandleResize() {
	if e.disposed {
		return
	}
	b := e.cfg.Container.Bounds()
	e.stage.Resize(b.Width, b.Height)
}

// Dispose stops every animation, removes input bindings, cancels pending
// loads and releases the surface and textures. Safe to call twice.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.tweens.KillAll()
	e.binder.reset()
	e.loader.Close()
	for _, t := range e.assets {
		t.Dispose()
	}
	if host, ok := e.cfg.Container.(SurfaceHost); ok {
		host.DetachSurface(e.stage.surface)
	}
	e.stage.Dispose()
	e.testRunner = nil
	e.screenshotQueue = nil
}

// IsDisposed reports whether Dispose has been called.
func (e *Effect) IsDisposed() bool { return e.disposed }

// Blend returns the current blend factor in [0, 1].
func (e *Effect) Blend() float64 { return e.stage.Blend() }

// CurrentIndex returns the asset shown or being transitioned to in pair mode,
// or the committed asset in carousel mode.
func (e *Effect) CurrentIndex() int { return e.ctrl.Current() }

// Transitioning reports whether a blend animation is running.
func (e *Effect) Transitioning() bool {
	if e.disposed {
		return false
	}
	return e.ctrl.Transitioning()
}

// Config returns the resolved configuration.
func (e *Effect) Config() Config { return e.cfg }

// Surface returns the surface the effect renders into.
func (e *Effect) Surface() Surface { return e.stage.surface }

// Scale returns the current cover-fit scale pair (a1, a2).
func (e *Effect) Scale() (a1, a2 float64) { return e.stage.Scale() }

// RenderMode returns the redraw policy chosen from the asset kind.
func (e *Effect) RenderMode() RenderMode { return e.stage.mode }

// Players returns the video players, one per asset, in video mode.
func (e *Effect) Players() []*VideoPlayer { return e.players }

// WaitForAssets blocks until every asset has loaded or failed, or ctx is
// done. It applies completions on the calling goroutine, so it must be
// called from the update goroutine.
func (e *Effect) WaitForAssets(ctx context.Context) error {
	if e.disposed {
		return nil
	}
	return e.loader.Wait(ctx)
}

// OnPointerEnter registers a callback fired when the mouse enters the
// container.
func (e *Effect) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return e.binder.OnPointerEnter(fn)
}

// OnPointerLeave registers a callback fired when the mouse leaves the
// container.
func (e *Effect) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return e.binder.OnPointerLeave(fn)
}

// OnTouchStart registers a callback fired when a touch begins inside the
// container.
func (e *Effect) OnTouchStart(fn func(PointerContext)) CallbackHandle {
	return e.binder.OnTouchStart(fn)
}

// OnTouchEnd registers a callback fired when a touch that began inside the
// container ends.
func (e *Effect) OnTouchEnd(fn func(PointerContext)) CallbackHandle {
	return e.binder.OnTouchEnd(fn)
}

// InjectPointerMove queues a synthetic mouse move in screen coordinates.
func (e *Effect) InjectPointerMove(x, y float64) { e.binder.InjectPointerMove(x, y) }

// InjectTouchStart queues the start of synthetic touch id.
func (e *Effect) InjectTouchStart(id int, x, y float64) { e.binder.InjectTouchStart(id, x, y) }

// InjectTouchEnd queues the end of synthetic touch id.
func (e *Effect) InjectTouchEnd(id int) { e.binder.InjectTouchEnd(id) }

// InjectTap queues a synthetic touch start and end at (x, y).
func (e *Effect) InjectTap(x, y float64) { e.binder.InjectTap(x, y) }
