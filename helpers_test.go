package hoverfx

import (
	"context"
	"fmt"
	"image/color"
	"testing"
	"testing/fstest"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/hoverfx/internal/procgen"
)

// recordingSurface is a headless Surface that records every call.
type recordingSurface struct {
	w, h     int
	ops      []string
	frames   []Frame
	disposed bool
}

func (s *recordingSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.ops = append(s.ops, fmt.Sprintf("resize %dx%d", w, h))
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Draw(f *Frame) {
	cp := *f
	cp.Vertices = append([]ebiten.Vertex(nil), f.Vertices...)
	s.frames = append(s.frames, cp)
	s.ops = append(s.ops, "draw")
}

func (s *recordingSurface) Image() *ebiten.Image { return nil }

func (s *recordingSurface) Dispose() { s.disposed = true }

func (s *recordingSurface) draws() int { return len(s.frames) }

func (s *recordingSurface) last() Frame {
	if len(s.frames) == 0 {
		return Frame{}
	}
	return s.frames[len(s.frames)-1]
}

// surfaceRecorder hands out recordingSurfaces and counts creations.
type surfaceRecorder struct {
	created []*recordingSurface
}

func (r *surfaceRecorder) factory(w, h int) Surface {
	s := &recordingSurface{w: w, h: h}
	r.created = append(r.created, s)
	return s
}

// fakeInput is a scripted InputSource.
type fakeInput struct {
	x, y    int
	touches []ebiten.TouchID
	pos     map[ebiten.TouchID][2]int
}

func newFakeInput() *fakeInput {
	return &fakeInput{x: -1, y: -1, pos: make(map[ebiten.TouchID][2]int)}
}

func (f *fakeInput) CursorPosition() (int, int) { return f.x, f.y }

func (f *fakeInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return append(ids, f.touches...)
}

func (f *fakeInput) TouchPosition(id ebiten.TouchID) (int, int) {
	p := f.pos[id]
	return p[0], p[1]
}

func (f *fakeInput) touch(id ebiten.TouchID, x, y int) {
	if _, ok := f.pos[id]; !ok {
		f.touches = append(f.touches, id)
	}
	f.pos[id] = [2]int{x, y}
}

func (f *fakeInput) release(id ebiten.TouchID) {
	delete(f.pos, id)
	for i, t := range f.touches {
		if t == id {
			f.touches = append(f.touches[:i], f.touches[i+1:]...)
			return
		}
	}
}

// eventRecorder is an EventSink that keeps every event.
type eventRecorder struct {
	events []TransitionEvent
}

func (r *eventRecorder) EmitEvent(e TransitionEvent) { r.events = append(r.events, e) }

// testFS returns 8×8 assets: disp.png, a.png, b.png, c.png and clip.gif.
func testFS(t *testing.T) fstest.MapFS {
	t.Helper()
	fsys := fstest.MapFS{}
	add := func(name string, data []byte, err error) {
		if err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		fsys[name] = &fstest.MapFile{Data: data}
	}
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}

	data, err := procgen.EncodePNG(procgen.Displacement(8, 8, 4, 1))
	add("disp.png", data, err)
	data, err = procgen.EncodePNG(procgen.Gradient(8, 8, red, red, 0))
	add("a.png", data, err)
	data, err = procgen.EncodePNG(procgen.Gradient(8, 8, blue, blue, 0))
	add("b.png", data, err)
	data, err = procgen.EncodePNG(procgen.Gradient(8, 8, green, green, 0))
	add("c.png", data, err)
	data, err = procgen.EncodeGIF(procgen.Pulse(8, 8, 3, red, blue))
	add("clip.gif", data, err)
	return fsys
}

type testEffect struct {
	*Effect
	surfaces *surfaceRecorder
	input    *fakeInput
	events   *eventRecorder
	region   *Region
}

func (te *testEffect) surface() *recordingSurface { return te.surfaces.created[0] }

// newTestEffect builds an effect on a 400×300 region at (100, 50) with
// headless surface, fake input and in-memory assets. opts.Container is set
// when nil.
func newTestEffect(t *testing.T, opts Options, extra ...EffectOption) *testEffect {
	t.Helper()
	te := &testEffect{
		surfaces: &surfaceRecorder{},
		input:    newFakeInput(),
		events:   &eventRecorder{},
		region:   NewRegion(100, 50, 400, 300),
	}
	if opts.Container == nil {
		opts.Container = te.region
	}
	if opts.Displacement == "" {
		opts.Displacement = "disp.png"
	}
	if opts.Image1 == "" && len(opts.Images) == 0 {
		opts.Image1, opts.Image2 = "a.png", "b.png"
	}
	options := append([]EffectOption{
		WithSurfaceFactory(te.surfaces.factory),
		WithInputSource(te.input),
		WithEventSink(te.events),
		WithFS(testFS(t)),
		WithDeviceScale(1),
	}, extra...)

	fx, err := New(opts, options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(fx.Dispose)
	te.Effect = fx
	return te
}

// waitAssets drains every pending load.
func (te *testEffect) waitAssets(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := te.WaitForAssets(ctx); err != nil {
		t.Fatalf("WaitForAssets: %v", err)
	}
}

// runUntilIdle advances frames of dt until no transition runs, failing
// after max frames.
func (te *testEffect) runUntilIdle(t *testing.T, dt float64, maxFrames int) int {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if !te.Transitioning() {
			return i
		}
		te.advance(dt)
	}
	if te.Transitioning() {
		t.Fatalf("still transitioning after %d frames", maxFrames)
	}
	return maxFrames
}
