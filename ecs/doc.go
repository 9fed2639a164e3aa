// Package ecs connects canvasanim to a [Donburi] world.
//
// [NewDonburiSink] publishes scheduler task events into the world as typed
// events, and [EntityTarget] lets the scheduler animate an entity's
// [Transform] and [Tint] components directly.
//
// Usage:
//
//	sched := canvasanim.New(128, canvasanim.WithEventSink(ecs.NewDonburiSink(world)))
//	ecs.TaskEventType.Subscribe(world, onTaskEvent)
//
//	e := world.Create(ecs.Transform, ecs.Tint)
//	sched.Submit(canvasanim.Fade(ecs.NewEntityTarget(world, e), true, timing))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
