package ecs

import (
	"github.com/phanxgames/jigsaw"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BoardEventType is the Donburi event type for jigsaw board events.
// Subscribe to this in your ECS systems to react to drops, snaps and wins.
var BoardEventType = events.NewEventType[jigsaw.BoardEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Board events are published to BoardEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) jigsaw.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event jigsaw.BoardEvent) {
	BoardEventType.Publish(s.world, event)
}

// Attach routes the events of b into world, replacing any previous sink.
func Attach(world donburi.World, b *jigsaw.Board) {
	b.SetEventSink(NewDonburiSink(world))
}

// Subscribe registers fn for board events of type typ only.
func Subscribe(world donburi.World, typ jigsaw.EventType, fn func(w donburi.World, e jigsaw.BoardEvent)) {
	BoardEventType.Subscribe(world, func(w donburi.World, e jigsaw.BoardEvent) {
		if e.Type == typ {
			fn(w, e)
		}
	})
}

// OnSolved registers fn to run when the puzzle becomes solved.
func OnSolved(world donburi.World, fn func(w donburi.World)) {
	Subscribe(world, jigsaw.EventSolved, func(w donburi.World, _ jigsaw.BoardEvent) {
		fn(w)
	})
}
