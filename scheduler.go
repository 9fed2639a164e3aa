package canvasanim

import (
	"fmt"
	"log/slog"
	"time"
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock used to timestamp submissions and by Update.
// The default is a monotonic wall clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDebug enables per-tick timing and counts at debug level.
func WithDebug(on bool) Option {
	return func(s *Scheduler) { s.debug = on }
}

// WithEventSink routes task lifecycle events to sink.
func WithEventSink(sink EventSink) Option {
	return func(s *Scheduler) { s.sink = sink }
}

// WithOnError sets a hook receiving every non-fatal error raised inside Tick
// and every dropped submission.
func WithOnError(fn func(error)) Option {
	return func(s *Scheduler) { s.onError = fn }
}

// Stats is a snapshot of scheduler counters.
type Stats struct {
	Active    int    `json:"active"`
	Peak      int    `json:"peak"`
	Capacity  int    `json:"capacity"`
	Baselines int    `json:"baselines"`
	Submitted uint64 `json:"submitted"`
	Completed uint64 `json:"completed"`
	Cancelled uint64 `json:"cancelled"`
	Dropped   uint64 `json:"dropped"`
	Orphaned  uint64 `json:"orphaned"`
}

// Scheduler owns a fixed-capacity task table and baseline table and advances
// every task once per Tick. A Scheduler is not safe for concurrent use; all
// calls must come from the goroutine that ticks it.
type Scheduler struct {
	tasks     *Pool[task]
	gens      []uint32
	baselines *baselineTable

	clock   Clock
	log     *slog.Logger
	debug   bool
	sink    EventSink
	onError func(error)

	initialized bool
	enabled     bool
	exit        exitState
	stats       Stats
	lastTick    tickStats
}

// New returns a Scheduler with room for capacity concurrent tasks and
// capacity baseline entries.
func New(capacity int, opts ...Option) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}
	s.Initialize(capacity)
	return s
}

// Initialize (re)creates every pool with the given capacity, dropping all
// tasks and baselines. Options set earlier are kept. A capacity below 1 is
// raised to 1.
func (s *Scheduler) Initialize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if s.clock == nil {
		s.clock = newMonoClock()
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	s.tasks = NewPool[task](capacity)
	s.gens = make([]uint32, capacity)
	s.baselines = newBaselineTable(capacity)
	s.stats = Stats{}
	s.exit = exitState{}
	s.enabled = true
	s.initialized = true
	s.log.Info("scheduler initialized", "capacity", capacity)
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock { return s.clock }

// Submit validates spec and places it in the task table. The submission is
// timestamped with the scheduler clock. When the table is full the task is
// dropped and ErrCapacityExhausted is returned; nothing is queued.
func (s *Scheduler) Submit(spec TaskSpec) (TaskID, error) {
	if !s.initialized {
		return 0, ErrNotInitialized
	}
	if !validTarget(spec.Target) {
		s.log.Error("submit rejected: invalid target", "mode", spec.Mode.String())
		return 0, ErrInvalidTarget
	}
	now := s.clock.Now()
	slot, ok := s.tasks.Alloc(newTask(spec, now))
	if !ok {
		s.stats.Dropped++
		s.log.Warn("task dropped: capacity exhausted",
			"target", targetName(spec.Target), "mode", spec.Mode.String(), "capacity", s.tasks.Cap())
		s.emit(EventDropped, 0, spec.Target, spec.Mode, now)
		s.report(fmt.Errorf("submit %s on %s: %w", spec.Mode, targetName(spec.Target), ErrCapacityExhausted))
		return 0, ErrCapacityExhausted
	}
	s.stats.Submitted++
	id := makeTaskID(slot, s.gens[slot])
	s.log.Debug("task created", "id", id.String(), "target", targetName(spec.Target), "mode", spec.Mode.String(),
		"duration", spec.Duration, "delay", spec.Delay)
	return id, nil
}

// SubmitAll submits every spec in order. It returns the IDs of the accepted
// tasks and the first error encountered; later specs are still attempted.
func (s *Scheduler) SubmitAll(specs ...TaskSpec) ([]TaskID, error) {
	ids := make([]TaskID, 0, len(specs))
	var first error
	for _, spec := range specs {
		id, err := s.Submit(spec)
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		ids = append(ids, id)
	}
	return ids, first
}

// Cancel retires every task whose target is target and returns how many
// were retired.
func (s *Scheduler) Cancel(target Target) (int, error) {
	if !s.initialized {
		return 0, ErrNotInitialized
	}
	if target == nil {
		s.log.Error("cancel skipped: invalid target")
		return 0, ErrInvalidTarget
	}
	now := s.clock.Now()
	n := 0
	for i := s.tasks.Next(0); i >= 0; i = s.tasks.Next(i + 1) {
		if s.tasks.Ptr(i).target == target {
			s.retire(i, EventCancelled, now)
			n++
		}
	}
	if n > 0 {
		s.log.Debug("tasks cancelled", "target", targetName(target), "count", n)
	}
	return n, nil
}

// CancelTask retires the task identified by id. It reports false when the
// task already retired.
func (s *Scheduler) CancelTask(id TaskID) bool {
	if !s.live(id) {
		return false
	}
	s.retire(id.Slot(), EventCancelled, s.clock.Now())
	s.log.Debug("task cancelled", "id", id.String())
	return true
}

// CancelAll retires every task and returns how many were retired.
func (s *Scheduler) CancelAll() int {
	if !s.initialized {
		return 0
	}
	now := s.clock.Now()
	n := 0
	for i := s.tasks.Next(0); i >= 0; i = s.tasks.Next(i + 1) {
		s.retire(i, EventCancelled, now)
		n++
	}
	if n > 0 {
		s.log.Debug("all tasks cancelled", "count", n)
	}
	return n
}

// State returns the lifecycle state of id. Retired and unknown IDs report
// TaskComplete.
func (s *Scheduler) State(id TaskID) TaskState {
	if !s.live(id) {
		return TaskComplete
	}
	return s.tasks.Ptr(id.Slot()).state
}

func (s *Scheduler) live(id TaskID) bool {
	if !s.initialized || id == 0 {
		return false
	}
	slot := id.Slot()
	return s.tasks.Occupied(slot) && s.gens[slot] == id.gen()
}

// Update advances all tasks to the scheduler clock's current time.
func (s *Scheduler) Update() {
	if s.initialized {
		s.Tick(s.clock.Now())
	}
}

// Tick advances every task to now. It never panics on bad targets and never
// returns an error; failures go to the logger and the OnError hook.
func (s *Scheduler) Tick(now time.Duration) {
	if !s.initialized {
		return
	}
	s.checkExit(now)
	if !s.enabled {
		return
	}

	var start time.Time
	if s.debug {
		start = time.Now()
	}
	s.lastTick = tickStats{}

	for i := s.tasks.Next(0); i >= 0; i = s.tasks.Next(i + 1) {
		s.advance(i, now)
	}

	if s.debug {
		s.lastTick.elapsed = time.Since(start)
		s.logTick(now)
	}
}

// advance runs one tick of the task in slot.
func (s *Scheduler) advance(slot int, now time.Duration) {
	tk := s.tasks.Ptr(slot)
	s.lastTick.visited++
	if !validTarget(tk.target) {
		s.stats.Orphaned++
		s.log.Warn("task orphaned: target invalid", "id", makeTaskID(slot, s.gens[slot]).String(), "mode", tk.mode.String())
		s.retire(slot, EventOrphaned, now)
		return
	}
	t, ok := tk.progress(now)
	if !ok {
		return
	}
	if tk.state == TaskPending {
		s.resolve(tk)
		tk.state = TaskRunning
		s.emit(EventStarted, makeTaskID(slot, s.gens[slot]), tk.target, tk.mode, now)
	}
	s.lastTick.applied++
	s.apply(slot, tk, easeWith(t, tk.transition, tk.custom))
	if t >= 1 {
		s.stats.Completed++
		s.log.Debug("task finished", "id", makeTaskID(slot, s.gens[slot]).String(),
			"target", targetName(tk.target), "mode", tk.mode.String())
		s.retire(slot, EventCompleted, now)
	}
}

// resolve captures every start value still unset, preferring the baseline
// for channels listed in the task's UseBaseline set.
func (s *Scheduler) resolve(tk *task) {
	for ch := ChannelPosition; ch <= ChannelScale; ch++ {
		if tk.resolved.Has(ch) {
			continue
		}
		v, ok := Vec3{}, false
		if tk.useBaseline.Has(ch) {
			v, ok = s.baselines.vec(tk.target, ch)
		}
		if !ok {
			v = readVec(tk.target, ch)
		}
		tk.from[ch] = v
		tk.resolved |= Of(ch)
	}
	if !tk.resolved.Has(ChannelColor) {
		c, ok := Color{}, false
		if tk.useBaseline.Has(ChannelColor) {
			c, ok = s.baselines.color(tk.target)
		}
		if !ok {
			c, ok = readColor(tk.target, tk.colorKind)
		}
		tk.fromColor = c
		tk.noColor = !ok
		tk.resolved |= SetColor
	}
}

// retire releases the task in slot and bumps its generation. It is the only
// release path for tasks.
func (s *Scheduler) retire(slot int, typ EventType, now time.Duration) {
	tk := s.tasks.Ptr(slot)
	id := makeTaskID(slot, s.gens[slot])
	target, mode := tk.target, tk.mode
	s.tasks.Release(slot)
	s.gens[slot]++
	if typ == EventCancelled {
		s.stats.Cancelled++
	}
	s.lastTick.retired++
	s.emit(typ, id, target, mode, now)
}

// report forwards err to the OnError hook.
func (s *Scheduler) report(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

// Active returns the number of tasks in the table.
func (s *Scheduler) Active() int {
	if !s.initialized {
		return 0
	}
	return s.tasks.Len()
}

// Peak returns the highest Active value seen since Initialize.
func (s *Scheduler) Peak() int {
	if !s.initialized {
		return 0
	}
	return s.tasks.Peak()
}

// Capacity returns the task table size.
func (s *Scheduler) Capacity() int {
	if !s.initialized {
		return 0
	}
	return s.tasks.Cap()
}

// Stats returns a snapshot of the scheduler counters.
func (s *Scheduler) Stats() Stats {
	st := s.stats
	if s.initialized {
		st.Active = s.tasks.Len()
		st.Peak = s.tasks.Peak()
		st.Capacity = s.tasks.Cap()
		st.Baselines = s.baselines.entries.Len()
	}
	return st
}
