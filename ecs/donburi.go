// Package ecs provides ECS adapters for hoverfx.
package ecs

import (
	"github.com/phanxgames/hoverfx"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TransitionEventType is the Donburi event type for hoverfx transition events.
// Subscribe to this in your ECS systems to react to transitions starting and
// finishing.
var TransitionEventType = events.NewEventType[hoverfx.TransitionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Transition events are published to TransitionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) hoverfx.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event hoverfx.TransitionEvent) {
	TransitionEventType.Publish(s.world, event)
}
