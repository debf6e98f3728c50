package hoverfx

import (
	"errors"
	"math"
	"testing"
)

func TestNewMissingContainerCreatesNothing(t *testing.T) {
	rec := &surfaceRecorder{}
	fx, err := New(Options{Displacement: "disp.png", Image1: "a.png", Image2: "b.png"},
		WithSurfaceFactory(rec.factory))
	if fx != nil {
		t.Error("New should return nil on a configuration error")
	}
	if !errors.Is(err, ErrMissingContainer) {
		t.Errorf("err = %v, want ErrMissingContainer", err)
	}
	if len(rec.created) != 0 {
		t.Errorf("surfaces created = %d, want 0", len(rec.created))
	}
}

func TestNewMissingAssetsCreatesNothing(t *testing.T) {
	rec := &surfaceRecorder{}
	_, err := New(Options{Container: NewRegion(0, 0, 10, 10), Displacement: "disp.png", Image1: "a.png"},
		WithSurfaceFactory(rec.factory))
	if !errors.Is(err, ErrMissingAssets) {
		t.Errorf("err = %v, want ErrMissingAssets", err)
	}
	if len(rec.created) != 0 {
		t.Errorf("surfaces created = %d, want 0", len(rec.created))
	}
}

func TestNewSurfaceSize(t *testing.T) {
	tests := []struct {
		name         string
		opts         Options
		scale        float64
		wantW, wantH int
	}{
		{"device scale 1", Options{}, 1, 400, 300},
		{"device scale 2", Options{}, 2, 800, 600},
		{"option overrides device", Options{PixelRatio: Ptr(1.5)}, 2, 600, 450},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEffect(t, tt.opts, WithDeviceScale(tt.scale))
			if len(te.surfaces.created) != 1 {
				t.Fatalf("surfaces created = %d, want 1", len(te.surfaces.created))
			}
			w, h := te.Surface().Size()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("surface = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNewRendersOnceThenOnEachLoad(t *testing.T) {
	te := newTestEffect(t, Options{})
	s := te.surface()
	if s.draws() != 1 {
		t.Errorf("draws after New = %d, want 1", s.draws())
	}
	if te.Stats().PendingLoads != 3 {
		t.Errorf("PendingLoads = %d, want 3", te.Stats().PendingLoads)
	}

	te.waitAssets(t)
	if s.draws() != 4 {
		t.Errorf("draws after loads = %d, want 4", s.draws())
	}
	u := s.last().Uniforms
	if !u.Texture1.Ready() || !u.Texture2.Ready() || !u.Displacement.Ready() {
		t.Error("every texture should be ready in the last frame")
	}
	if u.Texture1.Source != "a.png" || u.Texture2.Source != "b.png" || u.Displacement.Source != "disp.png" {
		t.Errorf("sources = %s, %s, %s", u.Texture1.Source, u.Texture2.Source, u.Displacement.Source)
	}
}

func TestNewUniformsFromConfig(t *testing.T) {
	te := newTestEffect(t, Options{
		Intensity1: Ptr(0.2),
		Intensity2: Ptr(0.4),
		Angle:      Ptr(0.5),
		ClearColor: Ptr("#102030"),
	})
	f := te.surface().last()
	u := f.Uniforms
	if u.Intensity1 != 0.2 || u.Intensity2 != 0.4 {
		t.Errorf("intensities = (%v, %v), want (0.2, 0.4)", u.Intensity1, u.Intensity2)
	}
	if u.Angle1 != 0.5 || u.Angle2 != -1.5 {
		t.Errorf("angles = (%v, %v), want (0.5, -1.5)", u.Angle1, u.Angle2)
	}
	if u.Blend != 0 {
		t.Errorf("Blend = %v, want 0", u.Blend)
	}
	if f.ClearColor.A != 1 || math.Abs(f.ClearColor.R-0x10/255.0) > 1e-6 {
		t.Errorf("ClearColor = %+v", f.ClearColor)
	}
	if len(f.Vertices) != 4 || len(f.Indices) != 6 {
		t.Errorf("geometry = %d vertices, %d indices", len(f.Vertices), len(f.Indices))
	}
}

func TestNewAttachesSurfaceToRegion(t *testing.T) {
	te := newTestEffect(t, Options{})
	if got := te.region.Surfaces(); len(got) != 1 || got[0] != te.Surface() {
		t.Fatalf("region surfaces = %v, want the effect surface", got)
	}
	te.Dispose()
	if len(te.region.Surfaces()) != 0 {
		t.Error("Dispose should detach the surface")
	}
}

func TestHandleResize(t *testing.T) {
	te := newTestEffect(t, Options{ImagesRatio: Ptr(0.5)})
	a1, a2 := te.Scale()
	if math.Abs(a1-400.0/300*0.5) > 1e-6 || a2 != 1 {
		t.Errorf("initial scale = (%v, %v), want (0.667, 1)", a1, a2)
	}

	te.region.SetSize(800, 300)
	te.HandleResize()

	a1, a2 = te.Scale()
	if a1 != 1 || math.Abs(a2-0.75) > 1e-6 {
		t.Errorf("scale after resize = (%v, %v), want (1, 0.75)", a1, a2)
	}
	s := te.surface()
	if w, h := s.Size(); w != 800 || h != 300 {
		t.Errorf("surface = %dx%d, want 800x300", w, h)
	}
	n := len(s.ops)
	if n < 2 || s.ops[n-2] != "resize 800x300" || s.ops[n-1] != "draw" {
		t.Errorf("ops tail = %v, want [resize 800x300 draw]", s.ops[max(n-2, 0):])
	}
	f := s.last()
	if f.Uniforms.Resolution[0] != 800 || f.Uniforms.Resolution[1] != 300 {
		t.Errorf("Resolution = %v, want 800x300", f.Uniforms.Resolution)
	}
	if f.Vertices[3].DstX != 800 || f.Vertices[3].DstY != 300 {
		t.Errorf("bottom-right vertex = (%v, %v), want (800, 300)", f.Vertices[3].DstX, f.Vertices[3].DstY)
	}
}

func TestResizeBeforeLoadUsesCurrentScale(t *testing.T) {
	te := newTestEffect(t, Options{ImagesRatio: Ptr(0.5)})
	te.region.SetSize(800, 300)
	te.HandleResize()
	te.waitAssets(t)

	r := te.surface().last().Uniforms.Resolution
	if r[0] != 800 || r[2] != 1 || math.Abs(float64(r[3])-0.75) > 1e-6 {
		t.Errorf("Resolution after late load = %v, want [800 300 1 0.75]", r)
	}
}

func TestHandleResizeHiDPI(t *testing.T) {
	te := newTestEffect(t, Options{}, WithDeviceScale(2))
	te.region.SetSize(100, 50)
	te.HandleResize()
	if w, h := te.Surface().Size(); w != 200 || h != 100 {
		t.Errorf("surface = %dx%d, want 200x100", w, h)
	}
	r := te.surface().last().Uniforms.Resolution
	if r[0] != 100 || r[1] != 50 {
		t.Errorf("Resolution = %v, want container size in CSS pixels", r)
	}
}

func TestPairNextAndPrevious(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.waitAssets(t)

	te.Next()
	if !te.Transitioning() || te.CurrentIndex() != 1 {
		t.Fatalf("Transitioning = %v CurrentIndex = %d, want true and 1", te.Transitioning(), te.CurrentIndex())
	}
	prev := te.Blend()
	for te.Transitioning() {
		te.advance(0.1)
		if te.Blend() < prev {
			t.Fatalf("blend decreased: %v -> %v", prev, te.Blend())
		}
		prev = te.Blend()
	}
	if te.Blend() != 1 {
		t.Errorf("Blend = %v, want 1", te.Blend())
	}

	te.Previous()
	te.runUntilIdle(t, 0.1, 100)
	if te.Blend() != 0 || te.CurrentIndex() != 0 {
		t.Errorf("Blend = %v CurrentIndex = %d, want 0 and 0", te.Blend(), te.CurrentIndex())
	}

	want := []TransitionEvent{
		{Type: TransitionStart, Direction: DirectionForward, From: 0, To: 1},
		{Type: TransitionEnd, Direction: DirectionForward, From: 0, To: 1},
		{Type: TransitionStart, Direction: DirectionBackward, From: 1, To: 0},
		{Type: TransitionEnd, Direction: DirectionBackward, From: 1, To: 0},
	}
	assertEvents(t, te.events.events, want)
	if te.events.events[1].Blend != 1 || te.events.events[3].Blend != 0 {
		t.Errorf("end event blends = %v, %v, want 1 and 0", te.events.events[1].Blend, te.events.events[3].Blend)
	}
}

func assertEvents(t *testing.T, got, want []TransitionEvent) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("events = %+v, want %d events", got, len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Type != w.Type || g.Direction != w.Direction || g.From != w.From || g.To != w.To {
			t.Errorf("event %d = %+v, want %s %d->%d dir %d", i, g, w.Type, w.From, w.To, w.Direction)
		}
	}
}

func TestPairLastCallWins(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.waitAssets(t)

	te.Next()
	for i := 0; i < 3; i++ {
		te.advance(0.1)
	}
	mid := te.Blend()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("blend mid-flight = %v, want in (0, 1)", mid)
	}

	te.Previous()
	if n := te.Stats().ActiveTweens; n != 1 {
		t.Errorf("ActiveTweens = %d, want 1", n)
	}
	te.advance(0.1)
	if te.Blend() >= mid {
		t.Errorf("blend = %v, want below %v after reversing", te.Blend(), mid)
	}
	te.runUntilIdle(t, 0.1, 100)
	if te.Blend() != 0 {
		t.Errorf("Blend = %v, want 0", te.Blend())
	}

	assertEvents(t, te.events.events, []TransitionEvent{
		{Type: TransitionStart, Direction: DirectionForward, From: 0, To: 1},
		{Type: TransitionStart, Direction: DirectionBackward, From: 1, To: 0},
		{Type: TransitionEnd, Direction: DirectionBackward, From: 1, To: 0},
	})
}

func TestPairRepeatedNextSingleAnimation(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.Next()
	te.advance(0.1)
	te.Next()
	te.Next()
	if n := te.Stats().ActiveTweens; n != 1 {
		t.Errorf("ActiveTweens = %d, want 1", n)
	}
	te.runUntilIdle(t, 0.1, 100)
	if te.Blend() != 1 {
		t.Errorf("Blend = %v, want 1", te.Blend())
	}
}

func TestPairTransitionTo(t *testing.T) {
	te := newTestEffect(t, Options{})
	if te.TransitionTo(2, 1) || te.TransitionTo(-1, 1) {
		t.Error("pair mode accepts only index 0 and 1")
	}
	if !te.TransitionTo(1, 0) {
		t.Fatal("TransitionTo(1, 0) should be accepted")
	}
	te.advance(0.016)
	if te.Blend() != 1 || te.Transitioning() {
		t.Errorf("Blend = %v Transitioning = %v, want 1 and false after a zero-duration transition",
			te.Blend(), te.Transitioning())
	}
}

func TestPairLinearEasing(t *testing.T) {
	te := newTestEffect(t, Options{Easing: Ptr("linear"), SpeedIn: Ptr(1.0)})
	te.Next()
	te.advance(0.5)
	if math.Abs(te.Blend()-0.5) > 1e-6 {
		t.Errorf("Blend = %v, want 0.5", te.Blend())
	}
}

func TestPairUnknownEasingStillAnimates(t *testing.T) {
	te := newTestEffect(t, Options{Easing: Ptr("wobbly")})
	te.Next()
	te.runUntilIdle(t, 0.1, 100)
	if te.Blend() != 1 {
		t.Errorf("Blend = %v, want 1", te.Blend())
	}
}

func TestOnDemandRendering(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.waitAssets(t)
	s := te.surface()

	before := s.draws()
	te.advance(0.1)
	te.advance(0.1)
	if s.draws() != before {
		t.Errorf("idle frames drew %d times, want 0", s.draws()-before)
	}

	te.Next()
	before = s.draws()
	te.advance(0.1)
	if s.draws()-before != 1 {
		t.Errorf("transition frame drew %d times, want 1", s.draws()-before)
	}
	if s.last().Uniforms.Blend != te.Blend() {
		t.Errorf("drawn blend = %v, want %v", s.last().Uniforms.Blend, te.Blend())
	}
}

func TestHoverMouse(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.input.x, te.input.y = 200, 100
	te.advance(0.1)
	if !te.Transitioning() || te.CurrentIndex() != 1 {
		t.Fatalf("enter should start a forward transition")
	}
	te.runUntilIdle(t, 0.1, 100)

	te.input.x, te.input.y = 50, 10
	te.advance(0.1)
	if !te.Transitioning() || te.CurrentIndex() != 0 {
		t.Fatalf("leave should start a backward transition")
	}
	te.runUntilIdle(t, 0.1, 100)
	if te.Blend() != 0 {
		t.Errorf("Blend = %v, want 0", te.Blend())
	}
}

func TestHoverTouch(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.input.touch(3, 150, 60)
	te.advance(0.1)
	if te.CurrentIndex() != 1 {
		t.Fatal("touch start inside should go forward")
	}
	te.input.release(3)
	te.advance(0.1)
	if te.CurrentIndex() != 0 {
		t.Fatal("touch end should go backward")
	}
}

func TestHoverDisabled(t *testing.T) {
	te := newTestEffect(t, Options{Hover: Ptr(false)})
	if n := te.Stats().Handlers; n != 0 {
		t.Errorf("Handlers = %d, want 0", n)
	}
	te.input.x, te.input.y = 200, 100
	te.advance(0.1)
	if te.Transitioning() {
		t.Error("pointer should not trigger transitions with hover disabled")
	}
	te.Next()
	if !te.Transitioning() {
		t.Error("programmatic Next should still work")
	}
}

func TestHoverEnabledRegistersFourHandlers(t *testing.T) {
	te := newTestEffect(t, Options{})
	if n := te.Stats().Handlers; n != 4 {
		t.Errorf("Handlers = %d, want 4", n)
	}
}

func TestDispose(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.waitAssets(t)
	te.Next()
	te.advance(0.1)
	textures := []*Texture{te.stage.AssetTexture(slotTexture1), te.stage.AssetTexture(slotTexture2)}

	te.Dispose()
	te.Dispose()

	if !te.IsDisposed() {
		t.Error("IsDisposed should be true")
	}
	if !te.surface().disposed {
		t.Error("surface should be disposed")
	}
	for _, tex := range textures {
		if !tex.IsDisposed() {
			t.Errorf("texture %s should be disposed", tex.Source)
		}
	}
	st := te.Stats()
	if st.ActiveTweens != 0 || st.Handlers != 0 || st.Transitioning {
		t.Errorf("stats after Dispose = %+v", st)
	}

	draws := te.surface().draws()
	blend := te.Blend()
	te.Next()
	te.Previous()
	te.HandleResize()
	te.advance(0.1)
	if te.TransitionTo(0, 1) {
		t.Error("TransitionTo after Dispose should return false")
	}
	if te.surface().draws() != draws || te.Blend() != blend {
		t.Error("methods after Dispose should be no-ops")
	}
}

func TestDisposeCancelsPendingLoads(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.Dispose()
	te.advance(0.1)
	if te.surface().draws() != 1 {
		t.Errorf("draws = %d, want only the initial draw", te.surface().draws())
	}
}

func TestStats(t *testing.T) {
	te := newTestEffect(t, Options{})
	te.waitAssets(t)
	te.Next()
	te.advance(0.1)
	te.advance(0.1)

	st := te.Stats()
	if st.Frames != 2 {
		t.Errorf("Frames = %d, want 2", st.Frames)
	}
	if st.Draws != te.surface().draws() {
		t.Errorf("Draws = %d, want %d", st.Draws, te.surface().draws())
	}
	if st.PendingLoads != 0 || st.ActiveTweens != 1 || !st.Transitioning {
		t.Errorf("stats = %+v", st)
	}
	if st.Blend != te.Blend() {
		t.Errorf("Blend = %v, want %v", st.Blend, te.Blend())
	}
}

func TestConfigAccessor(t *testing.T) {
	te := newTestEffect(t, Options{Speed: Ptr(0.8)})
	cfg := te.Config()
	if cfg.SpeedIn != 0.8 || cfg.SpeedOut != 0.8 || cfg.Mode != ModePair {
		t.Errorf("Config = %+v", cfg)
	}
	if te.RenderMode() != RenderOnDemand {
		t.Errorf("RenderMode = %d, want RenderOnDemand", te.RenderMode())
	}
	if te.Players() != nil {
		t.Error("image mode should have no players")
	}
}
