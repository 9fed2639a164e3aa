package canvasanim

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestDebugModeLogsTicks(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newTestScheduler(4, WithLogger(newBufferLogger(&buf)), WithDebug(true))
	n := NewContainer("n")
	s.Submit(moveTo(n, TargetVec(Vec3{X: 1}), time.Second))
	s.Tick(time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "msg=tick") || !strings.Contains(out, "tasks=1") {
		t.Errorf("expected tick stats in debug output, got:\n%s", out)
	}
}

func TestDebugModeOffIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newTestScheduler(4, WithLogger(newBufferLogger(&buf)))
	s.Submit(moveTo(NewContainer("n"), TargetVec(Vec3{X: 1}), time.Second))
	s.Tick(time.Millisecond)
	if strings.Contains(buf.String(), "msg=tick") {
		t.Error("tick stats should only be logged in debug mode")
	}
}

func TestDebugWarnsNearCapacity(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newTestScheduler(4, WithLogger(newBufferLogger(&buf)))
	s.SetDebug(true)
	n := NewContainer("n")
	for i := 0; i < 4; i++ {
		s.Submit(moveTo(n, TargetVec(Vec3{X: 1}), time.Second))
	}
	s.Tick(time.Millisecond)
	if !strings.Contains(buf.String(), "task table nearly full") {
		t.Errorf("expected capacity warning, got:\n%s", buf.String())
	}
}

func TestLoggerRecordsLifecycle(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newTestScheduler(1, WithLogger(newBufferLogger(&buf)))
	n := NewContainer("panel")
	s.Submit(moveTo(n, TargetVec(Vec3{X: 1}), 0))
	s.Submit(moveTo(n, TargetVec(Vec3{X: 1}), 0))
	s.Tick(time.Millisecond)

	out := buf.String()
	for _, want := range []string{"task created", "task dropped", "task finished", "target=panel"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
