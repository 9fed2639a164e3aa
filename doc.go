// Package canvasanim is a fixed-capacity animation scheduler for retained
// 2D scenes running on [Ebitengine].
//
// A [Scheduler] owns a task table of a fixed size chosen at construction.
// Each task animates one channel group (position, rotation, scale or color)
// of one [Target] and is advanced once per [Scheduler.Tick]. Nothing is
// allocated per tick; a submission against a full table is dropped with
// [ErrCapacityExhausted] instead of being queued.
//
// # Quick start
//
//	root := canvasanim.NewContainer("ui")
//	panel := canvasanim.NewSprite("panel", canvasanim.ColorWhite)
//	root.AddChild(panel)
//
//	d := canvasanim.NewDriver(root, 128)
//	d.Scheduler.Submit(canvasanim.Move(panel, canvasanim.DirUp, 40,
//		canvasanim.Timing{Duration: 400 * time.Millisecond, Transition: canvasanim.TransitionEaseOut}))
//	canvasanim.Run(d, canvasanim.RunConfig{Title: "Panels", Width: 640, Height: 480})
//
// Without ebiten, call [Scheduler.Tick] with any monotonic time, or
// [Scheduler.Update] to use the scheduler's [Clock].
//
// # Start values
//
// A task captures its start values on the first tick after its delay has
// elapsed, not at submission, so changes made during the delay are the
// starting point. Explicit start values in [TaskSpec] skip the capture, and
// [TaskSpec.UseBaseline] makes the capture prefer a node's baseline.
//
// # Baselines
//
// [Scheduler.Save] and the Define methods record a per-node resting state;
// [Scheduler.Reset] writes it back. Baselines live until [Scheduler.Remove].
//
// # Screen convention
//
// X grows to the right and Y grows downward. Rotations are Euler angles in
// degrees.
//
// # Timelines
//
// [LoadScript] reads a YAML or JSON timeline that a [Player] plays frame by
// frame against a [ManualClock], which is how the canvasanim command and the
// tests drive scripted scenes.
//
// [Ebitengine]: https://ebitengine.org
package canvasanim
