// Package ecs provides ECS adapters for jigsaw's board events.
//
// The primary adapter is [NewDonburiSink], which forwards board events
// (piece dropped, piece snapped, puzzle solved) into a [Donburi] world as
// typed events. Subscribe to [BoardEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	ecs.Attach(world, board)
//	ecs.OnSolved(world, func(w donburi.World) {
//		// show the win screen
//	})
//
// [Subscribe] filters by event type; [NewDonburiSink] is available for
// callers that manage the board's sink themselves.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
