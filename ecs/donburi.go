package ecs

import (
	"github.com/phanxgames/canvasanim"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TaskEventType is the Donburi event type for scheduler task events.
// Subscribe to it in your ECS systems to react to started, completed,
// cancelled, orphaned and dropped tasks.
var TaskEventType = events.NewEventType[canvasanim.TaskEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on TaskEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) canvasanim.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event canvasanim.TaskEvent) {
	TaskEventType.Publish(s.world, event)
}
