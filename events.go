package hoverfx

// TransitionEventType distinguishes the start and end of a transition.
type TransitionEventType uint8

const (
	TransitionStart TransitionEventType = iota
	TransitionEnd
)

// String returns "start" or "end".
func (t TransitionEventType) String() string {
	if t == TransitionEnd {
		return "end"
	}
	return "start"
}

// TransitionEvent describes a blend animation starting or finishing.
//
// In pair mode From and To are 0 and 1 for a forward transition and 1 and 0
// for a backward one. In carousel mode they are asset indices. An end event
// is only emitted for transitions that ran to completion; a pair-mode
// transition replaced by its opposite emits a new start event instead.
type TransitionEvent struct {
	Type      TransitionEventType
	Direction Direction
	From      int
	To        int
	// Blend is the blend factor when the event was emitted.
	Blend float64
}

// EventSink receives transition events on the update goroutine.
type EventSink interface {
	EmitEvent(e TransitionEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(e TransitionEvent)

// EmitEvent calls f(e).
func (f EventSinkFunc) EmitEvent(e TransitionEvent) { f(e) }
