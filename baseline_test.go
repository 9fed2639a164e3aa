package canvasanim

import (
	"errors"
	"testing"
)

func TestBaselineRoundTrip(t *testing.T) {
	s, _ := newTestScheduler(4)
	n := NewContainer("n")
	n.SetPosition(Vec3{1, 2, 3})

	if err := s.Save(n, SetPosition); err != nil {
		t.Fatal(err)
	}
	n.SetPosition(Vec3{40, 50, 60})
	if err := s.Reset(n, SetPosition); err != nil {
		t.Fatal(err)
	}
	if n.Position() != (Vec3{1, 2, 3}) {
		t.Errorf("position after reset = %v, want saved value", n.Position())
	}
}

func TestBaselineResetOnlyStoredChannels(t *testing.T) {
	s, _ := newTestScheduler(4)
	n := NewSprite("n", ColorWhite)
	n.SetRotation(Vec3{Z: 45})
	s.Save(n, SetRotation)

	n.SetRotation(Vec3{Z: 90})
	n.SetScale(Vec3{2, 2, 2})
	n.Color = Color{A: 0.5}

	if err := s.Reset(n, SetAll); err != nil {
		t.Fatal(err)
	}
	if n.RotZ != 45 {
		t.Errorf("rotation = %v, want 45", n.RotZ)
	}
	if n.ScaleX != 2 || n.Color.A != 0.5 {
		t.Error("channels without a baseline should be left untouched")
	}
}

func TestBaselineResaveReleasesOldSlot(t *testing.T) {
	const capacity = 2
	s, _ := newTestScheduler(capacity)
	n := NewSprite("n", ColorWhite)
	for i := 0; i < 10; i++ {
		n.X = float64(i)
		if err := s.Save(n, SetAll); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		if err := s.DefineColor(n, Color{R: float64(i)}); err != nil {
			t.Fatalf("define %d: %v", i, err)
		}
	}
	if got := s.baselines.vecs[ChannelPosition].Len(); got != 1 {
		t.Errorf("position slots in use = %d, want 1", got)
	}
	if got := s.baselines.colors.Len(); got != 1 {
		t.Errorf("color slots in use = %d, want 1", got)
	}
	if v, _ := s.BaselineTransform(n, ChannelPosition); v.X != 9 {
		t.Errorf("baseline x = %v, want 9", v.X)
	}
	if c, _ := s.BaselineColor(n); c.R != 9 {
		t.Errorf("baseline R = %v, want 9", c.R)
	}
}

func TestBaselineRemoveReleasesAll(t *testing.T) {
	s, _ := newTestScheduler(1)
	a := NewSprite("a", ColorWhite)
	b := NewSprite("b", ColorWhite)
	s.Save(a, SetAll)
	if err := s.Save(b, SetPosition); !errors.Is(err, ErrCapacityExhausted) {
		t.Fatalf("second entry err = %v, want ErrCapacityExhausted", err)
	}
	if err := s.Remove(a); err != nil {
		t.Fatal(err)
	}
	if s.HasBaseline(a) {
		t.Error("removed node still has a baseline")
	}
	if err := s.Save(b, SetAll); err != nil {
		t.Errorf("save after remove: %v", err)
	}
	if s.Stats().Baselines != 1 {
		t.Errorf("Baselines = %d, want 1", s.Stats().Baselines)
	}
}

func TestBaselineMissing(t *testing.T) {
	s, _ := newTestScheduler(4)
	n := NewContainer("n")
	if err := s.Reset(n, SetAll); !errors.Is(err, ErrMissingBaseline) {
		t.Errorf("Reset err = %v, want ErrMissingBaseline", err)
	}
	if err := s.Remove(n); !errors.Is(err, ErrMissingBaseline) {
		t.Errorf("Remove err = %v, want ErrMissingBaseline", err)
	}
	if s.HasBaseline(n) {
		t.Error("HasBaseline should be false")
	}
}

func TestBaselineInvalidTarget(t *testing.T) {
	s, _ := newTestScheduler(4)
	var nilNode *Node
	if err := s.Save(nilNode, SetAll); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Save err = %v", err)
	}
	if err := s.DefineTransform(nil, ChannelScale, Vec3One); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("DefineTransform err = %v", err)
	}
	if err := s.DefineColor(nil, ColorWhite); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("DefineColor err = %v", err)
	}
	if err := s.Reset(nil, SetAll); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Reset err = %v", err)
	}
	if err := s.Remove(nil); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Remove err = %v", err)
	}
	if s.Stats().Baselines != 0 {
		t.Error("invalid targets should not create entries")
	}
}

func TestBaselineSaveColorOnContainer(t *testing.T) {
	s, _ := newTestScheduler(4)
	n := NewContainer("n")
	n.X = 7
	err := s.Save(n, SetPosition|SetColor)
	if !errors.Is(err, ErrMissingAccessor) {
		t.Fatalf("err = %v, want ErrMissingAccessor", err)
	}
	if v, ok := s.BaselineTransform(n, ChannelPosition); !ok || v.X != 7 {
		t.Error("position should be saved despite the color failure")
	}
	if _, ok := s.BaselineColor(n); ok {
		t.Error("container should have no color baseline")
	}

	// A color-only save leaves no empty entry behind.
	m := NewContainer("m")
	s.Save(m, SetColor)
	if s.HasBaseline(m) {
		t.Error("failed color-only save should not create an entry")
	}
}

func TestBaselineResetColorWithoutAccessor(t *testing.T) {
	s, _ := newTestScheduler(4)
	n := NewContainer("n")
	s.DefineColor(n, ColorWhite)
	s.DefineTransform(n, ChannelScale, Vec3{3, 3, 3})
	err := s.Reset(n, SetAll)
	if !errors.Is(err, ErrMissingAccessor) {
		t.Errorf("err = %v, want ErrMissingAccessor", err)
	}
	if n.ScaleX != 3 {
		t.Error("scale should still be reset")
	}
}

func TestDefineTransformRejectsColorChannel(t *testing.T) {
	s, _ := newTestScheduler(4)
	if err := s.DefineTransform(NewContainer("n"), ChannelColor, Vec3{}); err == nil {
		t.Error("DefineTransform on the color channel should fail")
	}
}

func TestBaselineOutlivesTasks(t *testing.T) {
	s, _ := newTestScheduler(4)
	n := NewContainer("n")
	s.DefineTransform(n, ChannelPosition, Vec3{X: 10})
	s.Submit(moveTo(n, TargetVec(Vec3{X: 20}), 0))
	s.Tick(1)
	s.CancelAll()
	if !s.HasBaseline(n) {
		t.Error("baselines are only removed explicitly")
	}
}
