package canvasanim

import "time"

// Timing groups the duration, delay and curve shared by every preset.
type Timing struct {
	Duration   time.Duration
	Delay      time.Duration
	Transition Transition
}

// Direction selects whether a preset animates toward its value or from it
// back to the current state.
type Direction uint8

const (
	DirectionTo   Direction = iota // start -> value
	DirectionFrom                  // value -> start
)

// MoveDirection names the travel direction of the slide presets.
type MoveDirection uint8

const (
	DirUp MoveDirection = iota
	DirDown
	DirLeft
	DirRight
)

// The preset constructors below only shape a TaskSpec; pass the result to
// Scheduler.Submit (or SubmitAll). Every preset prefers baselines for all
// channels, so a node with a defined resting state always animates from it.
// Clear bits in UseBaseline to read live values instead.

func preset(t Target, mode Mode, tm Timing) TaskSpec {
	return TaskSpec{
		Target:      t,
		Mode:        mode,
		Duration:    tm.Duration,
		Delay:       tm.Delay,
		Transition:  tm.Transition,
		UseBaseline: SetAll,
	}
}

// Show makes t fully opaque on the next tick.
func Show(t Target) TaskSpec {
	return preset(t, ModeFadeIn, Timing{})
}

// Hide makes t fully transparent on the next tick.
func Hide(t Target) TaskSpec {
	return preset(t, ModeFadeOut, Timing{})
}

// Fade fades t in (alpha 0 to 1) or out (alpha 1 to 0).
func Fade(t Target, in bool, tm Timing) TaskSpec {
	if in {
		return preset(t, ModeFadeIn, tm)
	}
	return preset(t, ModeFadeOut, tm)
}

// Move slides t into its start position from offset pixels away. DirUp
// enters from below and rises into place.
func Move(t Target, dir MoveDirection, offset float64, tm Timing) TaskSpec {
	modes := [...]Mode{ModeMoveUp, ModeMoveDown, ModeMoveLeft, ModeMoveRight}
	spec := preset(t, modes[dir&3], tm)
	spec.PixelOffset = offset
	return spec
}

// MoveBy slides t offset pixels away from its start position.
func MoveBy(t Target, dir MoveDirection, offset float64, tm Timing) TaskSpec {
	modes := [...]Mode{ModeMoveToUp, ModeMoveToDown, ModeMoveToLeft, ModeMoveToRight}
	spec := preset(t, modes[dir&3], tm)
	spec.PixelOffset = offset
	return spec
}

// MovePosition moves t to the target position, or from it back to the
// current position.
func MovePosition(t Target, dir Direction, to VecTarget, tm Timing) TaskSpec {
	spec := preset(t, pick(dir, ModeMoveTo, ModeMoveFrom), tm)
	spec.Position = to
	return spec
}

// MoveFromTo moves t from an explicit start position to the target.
func MoveFromTo(t Target, from Vec3, to VecTarget, tm Timing) TaskSpec {
	spec := preset(t, ModeMoveTo, tm)
	spec.Position = to
	spec.StartPosition = Some(from)
	return spec
}

// Rotate turns t to the target Euler angles, or from them back.
func Rotate(t Target, dir Direction, to VecTarget, tm Timing) TaskSpec {
	spec := preset(t, pick(dir, ModeRotateTo, ModeRotateFrom), tm)
	spec.Rotation = to
	return spec
}

// RotateFromTo turns t from explicit start angles to the target.
func RotateFromTo(t Target, from Vec3, to VecTarget, tm Timing) TaskSpec {
	spec := preset(t, ModeRotateTo, tm)
	spec.Rotation = to
	spec.StartRotation = Some(from)
	return spec
}

// Flip gives t a half turn around a single axis. axis must be AxisX, AxisY
// or AxisZ; anything else flips around Z.
func Flip(t Target, axis AxisMask, tm Timing) TaskSpec {
	mode := ModeFlipZ
	switch axis {
	case AxisX:
		mode = ModeFlipX
	case AxisY:
		mode = ModeFlipY
	}
	return preset(t, mode, tm)
}

// Scale scales t to the target, or from it back to the current scale.
func Scale(t Target, dir Direction, to VecTarget, tm Timing) TaskSpec {
	spec := preset(t, pick(dir, ModeScaleTo, ModeScaleFrom), tm)
	spec.Scale = to
	return spec
}

// ScaleFromTo scales t from an explicit start scale to the target.
func ScaleFromTo(t Target, from Vec3, to VecTarget, tm Timing) TaskSpec {
	spec := preset(t, ModeScaleTo, tm)
	spec.Scale = to
	spec.StartScale = Some(from)
	return spec
}

// Tint animates the color of the given kind toward the target, or from it
// back to the current color.
func Tint(t Target, kind ColorKind, dir Direction, to ColorTarget, tm Timing) TaskSpec {
	spec := preset(t, pick(dir, ModeColorTo, ModeColorFrom), tm)
	spec.ColorKind = kind
	spec.Color = to
	return spec
}

// TintFromTo animates a color from an explicit start to the target.
func TintFromTo(t Target, kind ColorKind, from Color, to ColorTarget, tm Timing) TaskSpec {
	spec := preset(t, ModeColorTo, tm)
	spec.ColorKind = kind
	spec.Color = to
	spec.StartColor = Some(from)
	return spec
}

func pick(dir Direction, to, from Mode) Mode {
	if dir == DirectionFrom {
		return from
	}
	return to
}
