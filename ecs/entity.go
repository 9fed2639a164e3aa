package ecs

import (
	"fmt"

	"github.com/phanxgames/canvasanim"

	"github.com/yohamta/donburi"
)

// TransformData is the animatable transform of an entity.
type TransformData struct {
	Position canvasanim.Vec3
	Rotation canvasanim.Vec3
	Scale    canvasanim.Vec3
}

// TintData is the animatable color of an entity.
type TintData struct {
	Color canvasanim.Color
}

var (
	// Transform is required by EntityTarget.
	Transform = donburi.NewComponentType[TransformData]()
	// Tint is optional; without it color tasks report a missing accessor.
	Tint = donburi.NewComponentType[TintData]()
)

// EntityTarget adapts a Donburi entity to canvasanim.Target. It is disposed
// once the entity is removed from the world or loses its Transform.
type EntityTarget struct {
	world  donburi.World
	entity donburi.Entity
}

// NewEntityTarget returns a target for entity e of world w.
func NewEntityTarget(w donburi.World, e donburi.Entity) *EntityTarget {
	return &EntityTarget{world: w, entity: e}
}

// Entity returns the wrapped entity.
func (t *EntityTarget) Entity() donburi.Entity { return t.entity }

func (t *EntityTarget) String() string {
	return fmt.Sprintf("entity %d", t.entity.Id())
}

// IsDisposed implements canvasanim.Disposable.
func (t *EntityTarget) IsDisposed() bool {
	if t == nil || !t.world.Valid(t.entity) {
		return true
	}
	return !t.world.Entry(t.entity).HasComponent(Transform)
}

func (t *EntityTarget) transform() *TransformData {
	return Transform.Get(t.world.Entry(t.entity))
}

func (t *EntityTarget) Position() canvasanim.Vec3     { return t.transform().Position }
func (t *EntityTarget) SetPosition(v canvasanim.Vec3) { t.transform().Position = v }
func (t *EntityTarget) Rotation() canvasanim.Vec3     { return t.transform().Rotation }
func (t *EntityTarget) SetRotation(v canvasanim.Vec3) { t.transform().Rotation = v }
func (t *EntityTarget) Scale() canvasanim.Vec3        { return t.transform().Scale }
func (t *EntityTarget) SetScale(v canvasanim.Vec3)    { t.transform().Scale = v }

// ColorOf implements canvasanim.Tintable. Every kind maps to the Tint
// component.
func (t *EntityTarget) ColorOf(canvasanim.ColorKind) (canvasanim.Color, bool) {
	entry := t.world.Entry(t.entity)
	if !entry.HasComponent(Tint) {
		return canvasanim.Color{}, false
	}
	return Tint.Get(entry).Color, true
}

// SetColorOf implements canvasanim.Tintable.
func (t *EntityTarget) SetColorOf(_ canvasanim.ColorKind, c canvasanim.Color) bool {
	entry := t.world.Entry(t.entity)
	if !entry.HasComponent(Tint) {
		return false
	}
	Tint.Get(entry).Color = c
	return true
}
