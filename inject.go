package hoverfx

import "github.com/hajimehoshi/ebiten/v2"

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticTouchStart
	syntheticTouchEnd
)

// syntheticPointerEvent represents a single injected pointer event in
// screen coordinates, processed exactly like real input.
type syntheticPointerEvent struct {
	kind    syntheticKind
	touchID int
	x, y    float64
}

// InjectPointerMove queues a mouse move to the given screen coordinates.
// The event is consumed on the next frame's Update. The real cursor is
// ignored from then on until it moves.
func (b *binder) InjectPointerMove(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{kind: syntheticMove, x: x, y: y})
}

// InjectTouchStart queues the start of a synthetic touch identified by id.
func (b *binder) InjectTouchStart(id int, x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{kind: syntheticTouchStart, touchID: id, x: x, y: y})
}

// InjectTouchEnd queues the end of the synthetic touch identified by id.
func (b *binder) InjectTouchEnd(id int) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{kind: syntheticTouchEnd, touchID: id})
}

// InjectTap queues a touch start followed by a touch end at the same screen
// coordinates. Consumes two frames.
func (b *binder) InjectTap(x, y float64) {
	const tapID = -1
	b.InjectTouchStart(tapID, x, y)
	b.InjectTouchEnd(tapID)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer state machine. Returns true if an event was consumed.
func (b *binder) processInjectedInput() bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		b.mouseInjected = true
		b.realX, b.realY = b.source.CursorPosition()
		b.moveMouse(evt.x, evt.y)
	case syntheticTouchStart:
		if slot := b.syntheticSlot(evt.touchID, true); slot > 0 {
			b.beginTouch(slot, evt.x, evt.y)
		}
	case syntheticTouchEnd:
		if slot := b.syntheticSlot(evt.touchID, false); slot > 0 {
			b.endTouch(slot)
			b.touchUsed[slot] = false
			b.synthetic[slot] = false
			b.touchMap[slot] = 0
		}
	}
	return true
}

// syntheticSlot returns the slot held by synthetic touch id, allocating one
// when alloc is set. Returns -1 when there is none.
func (b *binder) syntheticSlot(id int, alloc bool) int {
	for i := 1; i < maxPointers; i++ {
		if b.synthetic[i] && int(b.touchMap[i]) == id {
			return i
		}
	}
	if !alloc {
		return -1
	}
	for i := 1; i < maxPointers; i++ {
		if !b.touchUsed[i] {
			b.touchUsed[i] = true
			b.synthetic[i] = true
			b.touchMap[i] = ebiten.TouchID(id)
			return i
		}
	}
	return -1
}
