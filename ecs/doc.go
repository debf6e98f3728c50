// Package ecs provides ECS adapters for hoverfx transition events.
//
// The adapter is [NewDonburiSink], which bridges transition start and end
// events into a [Donburi] world as typed events. Subscribe to
// [TransitionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	fx, err := hoverfx.New(opts, hoverfx.WithEventSink(ecs.NewDonburiSink(world)))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
