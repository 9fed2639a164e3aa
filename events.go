package canvasanim

import "time"

// EventType identifies a task lifecycle event.
type EventType uint8

const (
	EventStarted   EventType = iota // delay elapsed, start values resolved
	EventCompleted                  // final write applied, task retired
	EventCancelled                  // retired by Cancel, CancelTask or CancelAll
	EventOrphaned                   // retired because its target became invalid
	EventDropped                    // rejected at submission, table full
)

var eventTypeNames = [...]string{"started", "completed", "cancelled", "orphaned", "dropped"}

func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "unknown"
}

// TaskEvent carries a task lifecycle transition to an EventSink.
type TaskEvent struct {
	Type   EventType
	ID     TaskID
	Target Target
	Mode   Mode
	Time   time.Duration
}

// EventSink receives task lifecycle events. The ecs subpackage provides an
// implementation that forwards them into a donburi world.
type EventSink interface {
	EmitEvent(event TaskEvent)
}

// EventSinkFunc adapts a plain function to EventSink.
type EventSinkFunc func(TaskEvent)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event TaskEvent) { f(event) }

func (s *Scheduler) emit(typ EventType, id TaskID, target Target, mode Mode, now time.Duration) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(TaskEvent{Type: typ, ID: id, Target: target, Mode: mode, Time: now})
}
