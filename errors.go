package canvasanim

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when a scheduler is used before
	// Initialize (or New) has given it a capacity.
	ErrNotInitialized = errors.New("canvasanim: scheduler not initialized")

	// ErrCapacityExhausted is returned when a fixed-capacity table has no
	// free slot. The request is dropped; nothing is queued or retried.
	ErrCapacityExhausted = errors.New("canvasanim: capacity exhausted")

	// ErrInvalidTarget is returned when a nil or disposed node is passed to
	// an operation that needs one.
	ErrInvalidTarget = errors.New("canvasanim: invalid target")

	// ErrMissingBaseline is returned by Reset and Remove for a node that has
	// no baseline entry.
	ErrMissingBaseline = errors.New("canvasanim: no baseline for target")

	// ErrMissingAccessor is reported when a node lacks the accessor a
	// channel needs (for example a container asked for its color).
	ErrMissingAccessor = errors.New("canvasanim: missing property accessor")
)

// TaskError describes a non-fatal failure that happened while a task was
// being advanced. It unwraps to one of the sentinel errors.
type TaskError struct {
	ID      TaskID
	Target  string
	Channel Channel
	Err     error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %v on %q (%s): %v", e.ID, e.Target, e.Channel, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
