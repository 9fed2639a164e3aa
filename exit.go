package canvasanim

import "time"

// exitState tracks a scheduled shutdown.
type exitState struct {
	pending bool
	at      time.Duration
	veto    bool // skip the next exit once
}

// Exit disables the scheduler once the scheduler clock reaches now+after.
// A non-positive delay exits immediately. A later call replaces the pending
// deadline.
func (s *Scheduler) Exit(after time.Duration) {
	if !s.initialized {
		return
	}
	if after <= 0 {
		s.ExitNow()
		return
	}
	s.exit.pending = true
	s.exit.at = s.clock.Now() + after
	s.log.Debug("exit scheduled", "after", after)
}

// ExitNow disables the scheduler. Tasks stay in the table but no longer
// advance until Enable is called.
func (s *Scheduler) ExitNow() {
	s.exit.pending = false
	if s.exit.veto {
		s.exit.veto = false
		s.log.Info("exit cancelled")
		return
	}
	if !s.enabled {
		return
	}
	s.enabled = false
	if n := s.Active(); n > 0 {
		s.log.Warn("scheduler disabled with tasks still running", "active", n)
		return
	}
	s.log.Info("scheduler disabled")
}

// CancelExit vetoes the next exit, whether already scheduled or requested
// later. The veto is consumed by that exit.
func (s *Scheduler) CancelExit() {
	s.exit.veto = true
}

// Enable re-enables a scheduler disabled by an exit.
func (s *Scheduler) Enable() {
	if s.initialized {
		s.enabled = true
	}
}

// Enabled reports whether Tick advances tasks.
func (s *Scheduler) Enabled() bool {
	return s.initialized && s.enabled
}

func (s *Scheduler) checkExit(now time.Duration) {
	if s.exit.pending && now >= s.exit.at {
		s.ExitNow()
	}
}
