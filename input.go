package hoverfx

import "github.com/hajimehoshi/ebiten/v2"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// InputSource is where the binder reads pointer state each frame. The
// default reads Ebitengine's cursor and touch APIs.
type InputSource interface {
	CursorPosition() (x, y int)
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (x, y int)
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

// EbitenInput returns the InputSource backed by Ebitengine's global input
// state.
func EbitenInput() InputSource { return ebitenInput{} }

// PointerContext carries pointer event data passed to callbacks.
type PointerContext struct {
	Type      EventType
	PointerID int     // 0 = mouse, 1-9 = touch
	X, Y      float64 // screen coordinates
	LocalX    float64 // X relative to the container's top-left corner
	LocalY    float64 // Y relative to the container's top-left corner
}

// --- Per-pointer state ---

type pointerState struct {
	inside bool // mouse: cursor is over the container
	down   bool // touch: started inside the container and not yet ended
	lastX  float64
	lastY  float64
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	touchStart   []pointerHandler
	touchEnd     []pointerHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered input callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if list := h.reg.list(h.event); list != nil {
		*list = removePointerHandler(*list, h.id)
	}
}

func (r *handlerRegistry) list(event EventType) *[]pointerHandler {
	switch event {
	case EventPointerEnter:
		return &r.pointerEnter
	case EventPointerLeave:
		return &r.pointerLeave
	case EventTouchStart:
		return &r.touchStart
	case EventTouchEnd:
		return &r.touchEnd
	}
	return nil
}

func (r *handlerRegistry) add(event EventType, fn func(PointerContext)) CallbackHandle {
	r.nextID++
	id := r.nextID
	list := r.list(event)
	*list = append(*list, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: event}
}

func (r *handlerRegistry) clear() {
	clear(r.pointerEnter)
	clear(r.pointerLeave)
	clear(r.touchStart)
	clear(r.touchEnd)
	r.pointerEnter = r.pointerEnter[:0]
	r.pointerLeave = r.pointerLeave[:0]
	r.touchStart = r.touchStart[:0]
	r.touchEnd = r.touchEnd[:0]
}

func (r *handlerRegistry) count() int {
	return len(r.pointerEnter) + len(r.pointerLeave) + len(r.touchStart) + len(r.touchEnd)
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// binder turns raw pointer state into enter/leave/touchstart/touchend events
// on one container.
type binder struct {
	container Container
	source    InputSource
	handlers  handlerRegistry

	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	synthetic    [maxPointers]bool // slot held by an injected touch
	prevTouchIDs []ebiten.TouchID
	dispatchBuf  []pointerHandler

	injectQueue []syntheticPointerEvent

	// After an injected move the real cursor is ignored until it moves.
	mouseInjected bool
	realX, realY  int
}

func newBinder(c Container, src InputSource) *binder {
	if src == nil {
		src = EbitenInput()
	}
	return &binder{container: c, source: src}
}

// OnPointerEnter registers a callback fired when the mouse moves onto the
// container.
func (b *binder) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return b.handlers.add(EventPointerEnter, fn)
}

// OnPointerLeave registers a callback fired when the mouse moves off the
// container.
func (b *binder) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return b.handlers.add(EventPointerLeave, fn)
}

// OnTouchStart registers a callback fired when a touch begins inside the
// container.
func (b *binder) OnTouchStart(fn func(PointerContext)) CallbackHandle {
	return b.handlers.add(EventTouchStart, fn)
}

// OnTouchEnd registers a callback fired when a touch that began inside the
// container ends, wherever it ends.
func (b *binder) OnTouchEnd(fn func(PointerContext)) CallbackHandle {
	return b.handlers.add(EventTouchEnd, fn)
}

// process reads one frame of input. An injected event replaces the real
// mouse for that frame.
func (b *binder) process() {
	if !b.processInjectedInput() {
		b.processMousePointer()
	}
	b.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0).
func (b *binder) processMousePointer() {
	mx, my := b.source.CursorPosition()
	if b.mouseInjected {
		if mx == b.realX && my == b.realY {
			return
		}
		b.mouseInjected = false
	}
	b.realX, b.realY = mx, my
	b.moveMouse(float64(mx), float64(my))
}

func (b *binder) moveMouse(x, y float64) {
	ps := &b.pointers[0]
	ps.lastX, ps.lastY = x, y
	inside := b.container.Bounds().Contains(x, y)
	switch {
	case inside && !ps.inside:
		ps.inside = true
		b.fire(EventPointerEnter, 0, x, y)
	case !inside && ps.inside:
		ps.inside = false
		b.fire(EventPointerLeave, 0, x, y)
	}
}

// processTouchPointers handles touch input (pointers 1-9).
func (b *binder) processTouchPointers() {
	touchIDs := b.source.AppendTouchIDs(b.prevTouchIDs[:0])
	b.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot, fresh := b.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := b.source.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		ps := &b.pointers[slot]
		ps.lastX, ps.lastY = x, y
		if fresh {
			b.beginTouch(slot, x, y)
		}
	}

	// Release real touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && !b.synthetic[i] && !activeSlots[i] {
			b.endTouch(i)
			b.touchUsed[i] = false
			b.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9), allocating one
// for a new touch. Returns -1 if every slot is taken.
func (b *binder) touchSlot(tid ebiten.TouchID) (slot int, fresh bool) {
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && !b.synthetic[i] && b.touchMap[i] == tid {
			return i, false
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !b.touchUsed[i] {
			b.touchUsed[i] = true
			b.touchMap[i] = tid
			return i, true
		}
	}
	return -1, false
}

func (b *binder) beginTouch(slot int, x, y float64) {
	ps := &b.pointers[slot]
	ps.lastX, ps.lastY = x, y
	if b.container.Bounds().Contains(x, y) {
		ps.down = true
		b.fire(EventTouchStart, slot, x, y)
	}
}

func (b *binder) endTouch(slot int) {
	ps := &b.pointers[slot]
	if ps.down {
		ps.down = false
		b.fire(EventTouchEnd, slot, ps.lastX, ps.lastY)
	}
}

func (b *binder) fire(event EventType, pointerID int, x, y float64) {
	list := b.handlers.list(event)
	if list == nil || len(*list) == 0 {
		return
	}
	r := b.container.Bounds()
	ctx := PointerContext{
		Type:      event,
		PointerID: pointerID,
		X:         x,
		Y:         y,
		LocalX:    x - r.X,
		LocalY:    y - r.Y,
	}
	// Handlers may remove themselves while being dispatched.
	b.dispatchBuf = append(b.dispatchBuf[:0], *list...)
	for _, h := range b.dispatchBuf {
		h.fn(ctx)
	}
	clear(b.dispatchBuf)
}

// reset drops every handler and pending injected event.
func (b *binder) reset() {
	b.handlers.clear()
	b.injectQueue = b.injectQueue[:0]
}
