package canvasanim

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// TaskID identifies a submitted task. It combines the task's slot with a
// generation counter so an ID stays invalid after its slot is reused.
// The zero TaskID never refers to a task.
type TaskID uint64

func makeTaskID(slot int, gen uint32) TaskID {
	return TaskID(uint64(gen+1)<<32 | uint64(uint32(slot)))
}

// Slot returns the table slot the task occupies (or occupied).
func (id TaskID) Slot() int { return int(uint32(id)) }

func (id TaskID) gen() uint32 { return uint32(id>>32) - 1 }

// String returns "slot#generation".
func (id TaskID) String() string {
	if id == 0 {
		return "none"
	}
	return fmt.Sprintf("%d#%d", id.Slot(), id.gen())
}

// TaskState is the lifecycle state of a task.
type TaskState uint8

const (
	TaskPending  TaskState = iota // submitted, start values not yet captured
	TaskRunning                   // start values resolved, writing each tick
	TaskComplete                  // retired; also reported for unknown IDs
)

var taskStateNames = [...]string{"pending", "running", "complete"}

func (s TaskState) String() string {
	if int(s) < len(taskStateNames) {
		return taskStateNames[s]
	}
	return "unknown"
}

// Optional is a value that may be absent.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// TaskSpec describes one animation task. Only Target and Mode are required;
// everything else has a usable zero value.
type TaskSpec struct {
	Target Target
	Mode   Mode

	Duration time.Duration
	Delay    time.Duration

	// PixelOffset is the travel distance of the directional move modes.
	PixelOffset float64

	Transition Transition
	// Ease overrides Transition when non-nil.
	Ease ease.TweenFunc

	// ColorKind selects the accessor used by fade and color modes.
	ColorKind ColorKind

	// Per-axis targets used by ModeMoveTo/ModeMoveFrom, ModeRotateTo/ModeRotateFrom,
	// ModeScaleTo/ModeScaleFrom and ModeColorTo/ModeColorFrom.
	Position VecTarget
	Rotation VecTarget
	Scale    VecTarget
	Color    ColorTarget

	// Explicit start values. A missing start is resolved on the first tick
	// after the delay elapses.
	StartPosition Optional[Vec3]
	StartRotation Optional[Vec3]
	StartScale    Optional[Vec3]
	StartColor    Optional[Color]

	// UseBaseline lists the channels whose missing start value should come
	// from the target's baseline when one exists.
	UseBaseline ChannelSet
}

// task is the scheduler's record of a submitted TaskSpec.
type task struct {
	target     Target
	mode       Mode
	state      TaskState
	transition Transition
	colorKind  ColorKind
	custom     ease.TweenFunc

	submitted time.Duration
	delay     time.Duration
	duration  time.Duration
	offset    float64

	to      [3]VecTarget // position, rotation, scale
	toColor ColorTarget

	from      [3]Vec3
	fromColor Color

	resolved    ChannelSet // start values known
	noColor     bool       // color start could not be read
	useBaseline ChannelSet
	reported    bool // missing color accessor already reported
}

func newTask(spec TaskSpec, now time.Duration) task {
	tk := task{
		target:      spec.Target,
		mode:        spec.Mode,
		state:       TaskPending,
		transition:  spec.Transition,
		colorKind:   spec.ColorKind,
		custom:      spec.Ease,
		submitted:   now,
		delay:       max(spec.Delay, 0),
		duration:    max(spec.Duration, 0),
		offset:      spec.PixelOffset,
		to:          [3]VecTarget{spec.Position, spec.Rotation, spec.Scale},
		toColor:     spec.Color,
		useBaseline: spec.UseBaseline & SetAll,
	}
	starts := [3]Optional[Vec3]{spec.StartPosition, spec.StartRotation, spec.StartScale}
	for ch, st := range starts {
		if st.Valid {
			tk.from[ch] = st.Value
			tk.resolved |= Of(Channel(ch))
		}
	}
	if spec.StartColor.Valid {
		tk.fromColor = spec.StartColor.Value
		tk.resolved |= SetColor
	}
	return tk
}

// progress returns the normalized progress at now, or ok=false while the
// task is still waiting for its delay.
func (tk *task) progress(now time.Duration) (t float64, ok bool) {
	elapsed := now - (tk.submitted + tk.delay)
	if elapsed <= 0 {
		return 0, false
	}
	if tk.duration <= 0 {
		return 1, true
	}
	t = float64(elapsed) / float64(tk.duration)
	if t > 1 {
		t = 1
	}
	return t, true
}

