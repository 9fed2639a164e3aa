package canvasanim

import (
	"math"
	"testing"
	"time"
)

func TestPresetModes(t *testing.T) {
	n := NewSprite("n", ColorWhite)
	tm := Timing{Duration: time.Second, Delay: time.Millisecond, Transition: TransitionEaseOut}
	tests := []struct {
		name string
		spec TaskSpec
		want Mode
	}{
		{"show", Show(n), ModeFadeIn},
		{"hide", Hide(n), ModeFadeOut},
		{"fade in", Fade(n, true, tm), ModeFadeIn},
		{"fade out", Fade(n, false, tm), ModeFadeOut},
		{"move up", Move(n, DirUp, 10, tm), ModeMoveUp},
		{"move down", Move(n, DirDown, 10, tm), ModeMoveDown},
		{"move left", Move(n, DirLeft, 10, tm), ModeMoveLeft},
		{"move right", Move(n, DirRight, 10, tm), ModeMoveRight},
		{"move by up", MoveBy(n, DirUp, 10, tm), ModeMoveToUp},
		{"move by right", MoveBy(n, DirRight, 10, tm), ModeMoveToRight},
		{"move position to", MovePosition(n, DirectionTo, TargetVec(Vec3{}), tm), ModeMoveTo},
		{"move position from", MovePosition(n, DirectionFrom, TargetVec(Vec3{}), tm), ModeMoveFrom},
		{"rotate from", Rotate(n, DirectionFrom, TargetVec(Vec3{}), tm), ModeRotateFrom},
		{"scale to", Scale(n, DirectionTo, TargetVec(Vec3One), tm), ModeScaleTo},
		{"tint from", Tint(n, ColorKindAuto, DirectionFrom, TargetColor(ColorWhite), tm), ModeColorFrom},
		{"flip x", Flip(n, AxisX, tm), ModeFlipX},
		{"flip y", Flip(n, AxisY, tm), ModeFlipY},
		{"flip z", Flip(n, AxisZ, tm), ModeFlipZ},
		{"move from to", MoveFromTo(n, Vec3{}, TargetVec(Vec3One), tm), ModeMoveTo},
		{"rotate from to", RotateFromTo(n, Vec3{}, TargetVec(Vec3One), tm), ModeRotateTo},
		{"scale from to", ScaleFromTo(n, Vec3{}, TargetVec(Vec3One), tm), ModeScaleTo},
		{"tint from to", TintFromTo(n, ColorKindSprite, ColorWhite, TargetColor(Color{}), tm), ModeColorTo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.spec.Mode != tt.want {
				t.Errorf("mode = %v, want %v", tt.spec.Mode, tt.want)
			}
			if tt.spec.UseBaseline != SetAll {
				t.Errorf("UseBaseline = %b, want all channels", tt.spec.UseBaseline)
			}
			if tt.spec.Target != Target(n) {
				t.Error("target not set")
			}
		})
	}
}

func TestShowHideImmediate(t *testing.T) {
	s, _ := newTestScheduler(4)
	n := NewSprite("n", ColorWhite)
	s.Submit(Hide(n))
	s.Tick(time.Nanosecond)
	if n.Color.A != 0 || s.Active() != 0 {
		t.Errorf("after Hide alpha=%v active=%d, want 0 0", n.Color.A, s.Active())
	}
	s.Submit(Show(n))
	s.Tick(2 * time.Nanosecond)
	if n.Color.A != 1 {
		t.Errorf("after Show alpha=%v, want 1", n.Color.A)
	}
}

func TestFromToPresetsCarryStart(t *testing.T) {
	n := NewSprite("n", ColorWhite)
	spec := MoveFromTo(n, Vec3{X: -5}, TargetVec(Vec3{X: 5}), Timing{})
	if !spec.StartPosition.Valid || spec.StartPosition.Value.X != -5 {
		t.Error("MoveFromTo should carry its start position")
	}
	tint := TintFromTo(n, ColorKindSprite, Color{R: 1}, TargetColor(Color{}), Timing{})
	if !tint.StartColor.Valid || tint.ColorKind != ColorKindSprite {
		t.Error("TintFromTo should carry its start color and kind")
	}
}

func TestMovePresetSlidesIntoBaseline(t *testing.T) {
	s, _ := newTestScheduler(4)
	n := NewSprite("n", ColorWhite)
	s.DefineTransform(n, ChannelPosition, Vec3{X: 100, Y: 100})
	n.SetPosition(Vec3{}) // parked somewhere else

	s.Submit(Move(n, DirUp, 50, Timing{Duration: time.Second, Transition: TransitionLinear}))
	s.Tick(500 * time.Millisecond)
	if math.Abs(n.Y-125) > epsilon || n.X != 100 {
		t.Errorf("position = %v, want (100, 125)", n.Position())
	}
	s.Tick(time.Second)
	if n.Position() != (Vec3{X: 100, Y: 100}) {
		t.Errorf("final position = %v, want baseline", n.Position())
	}
}

func TestSubmitAll(t *testing.T) {
	s, _ := newTestScheduler(2)
	a := NewSprite("a", ColorWhite)
	ids, err := s.SubmitAll(Hide(a), Show(a), Fade(a, true, Timing{}))
	if err == nil {
		t.Error("third submission should report capacity exhaustion")
	}
	if len(ids) != 2 || s.Active() != 2 {
		t.Errorf("accepted %d ids, active %d, want 2 2", len(ids), s.Active())
	}
}
