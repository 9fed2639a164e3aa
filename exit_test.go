package canvasanim

import (
	"testing"
	"time"
)

func TestExitAfterDelay(t *testing.T) {
	s, clock := newTestScheduler(4)
	n := NewContainer("n")
	s.Submit(moveTo(n, TargetVec(Vec3{X: 100}), 10*time.Second))
	s.Exit(time.Second)

	s.Tick(500 * time.Millisecond)
	if !s.Enabled() {
		t.Fatal("scheduler disabled before the exit deadline")
	}
	x := n.X
	s.Tick(time.Second)
	if s.Enabled() {
		t.Fatal("scheduler should be disabled at the deadline")
	}
	if n.X != x {
		t.Error("disabled scheduler should not write")
	}
	if s.Active() != 1 {
		t.Error("exit keeps tasks in the table")
	}

	s.Enable()
	clock.Set(2 * time.Second)
	s.Update()
	if n.X == x {
		t.Error("re-enabled scheduler should advance tasks")
	}
}

func TestCancelExitOnce(t *testing.T) {
	s, _ := newTestScheduler(4)
	s.CancelExit()
	s.ExitNow()
	if !s.Enabled() {
		t.Fatal("vetoed exit should keep the scheduler enabled")
	}
	s.ExitNow()
	if s.Enabled() {
		t.Error("the veto applies to one exit only")
	}
}

func TestCancelExitScheduled(t *testing.T) {
	s, _ := newTestScheduler(4)
	s.Exit(time.Second)
	s.CancelExit()
	s.Tick(2 * time.Second)
	if !s.Enabled() {
		t.Error("scheduled exit should have been vetoed")
	}
	s.Tick(3 * time.Second)
	if !s.Enabled() {
		t.Error("a consumed exit should not fire again")
	}
}

func TestExitNonPositiveIsImmediate(t *testing.T) {
	s, _ := newTestScheduler(4)
	s.Exit(0)
	if s.Enabled() {
		t.Error("Exit(0) should disable immediately")
	}
}
