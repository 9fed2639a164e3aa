package canvasanim

import (
	"log/slog"
	"time"
)

// tickStats holds per-tick counts and timing.
// Only timed when the scheduler runs in debug mode.
type tickStats struct {
	elapsed time.Duration
	visited int
	applied int
	retired int
}

// debugCapacityRatio is the share of capacity above which debug mode warns
// that the task table is close to dropping submissions.
const debugCapacityRatio = 0.9

// logTick writes the last tick's stats at debug level.
func (s *Scheduler) logTick(now time.Duration) {
	st := s.lastTick
	s.log.Debug("tick",
		slog.Duration("now", now),
		slog.Duration("took", st.elapsed),
		slog.Int("tasks", st.visited),
		slog.Int("applied", st.applied),
		slog.Int("retired", st.retired),
		slog.Int("active", s.tasks.Len()),
		slog.Int("peak", s.tasks.Peak()),
	)
	s.debugCheckCapacity()
}

// debugCheckCapacity warns when the task table is nearly full.
func (s *Scheduler) debugCheckCapacity() {
	active, capacity := s.tasks.Len(), s.tasks.Cap()
	if float64(active) > float64(capacity)*debugCapacityRatio {
		s.log.Warn("task table nearly full", "active", active, "capacity", capacity)
	}
}

// SetDebug toggles debug mode after construction.
func (s *Scheduler) SetDebug(on bool) { s.debug = on }
