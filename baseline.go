package canvasanim

import (
	"errors"
	"fmt"
)

// baselineEntry records which channel slots a node owns. A slot of -1 means
// the channel has no baseline.
type baselineEntry struct {
	target Target
	slots  [numChannels]int
}

// baselineTable stores per-node saved or defined property values. Entries
// and values live in fixed pools sized to the scheduler capacity; lookups
// are linear scans over the occupied entries.
type baselineTable struct {
	entries *Pool[baselineEntry]
	vecs    [3]*Pool[Vec3] // position, rotation, scale
	colors  *Pool[Color]
}

func newBaselineTable(capacity int) *baselineTable {
	b := &baselineTable{
		entries: NewPool[baselineEntry](capacity),
		colors:  NewPool[Color](capacity),
	}
	for i := range b.vecs {
		b.vecs[i] = NewPool[Vec3](capacity)
	}
	return b
}

// find returns the entry index for t, or -1.
func (b *baselineTable) find(t Target) int {
	for i := b.entries.Next(0); i >= 0; i = b.entries.Next(i + 1) {
		if b.entries.Ptr(i).target == t {
			return i
		}
	}
	return -1
}

// ensure returns the entry for t, creating an empty one if needed.
func (b *baselineTable) ensure(t Target) (idx int, created bool, err error) {
	if idx = b.find(t); idx >= 0 {
		return idx, false, nil
	}
	idx, ok := b.entries.Alloc(baselineEntry{target: t, slots: [numChannels]int{-1, -1, -1, -1}})
	if !ok {
		return -1, false, ErrCapacityExhausted
	}
	return idx, true, nil
}

// vec returns the baseline of a transform channel.
func (b *baselineTable) vec(t Target, ch Channel) (Vec3, bool) {
	idx := b.find(t)
	if idx < 0 || ch > ChannelScale {
		return Vec3{}, false
	}
	slot := b.entries.Ptr(idx).slots[ch]
	if slot < 0 {
		return Vec3{}, false
	}
	return b.vecs[ch].Get(slot), true
}

// color returns the color baseline.
func (b *baselineTable) color(t Target) (Color, bool) {
	idx := b.find(t)
	if idx < 0 {
		return Color{}, false
	}
	slot := b.entries.Ptr(idx).slots[ChannelColor]
	if slot < 0 {
		return Color{}, false
	}
	return b.colors.Get(slot), true
}

// storeVec replaces the transform baseline of entry idx. The old slot is
// released before the new one is allocated.
func (b *baselineTable) storeVec(idx int, ch Channel, v Vec3) error {
	e := b.entries.Ptr(idx)
	pool := b.vecs[ch]
	if e.slots[ch] >= 0 {
		pool.Release(e.slots[ch])
		e.slots[ch] = -1
	}
	slot, ok := pool.Alloc(v)
	if !ok {
		return ErrCapacityExhausted
	}
	e.slots[ch] = slot
	return nil
}

// storeColor replaces the color baseline of entry idx.
func (b *baselineTable) storeColor(idx int, c Color) error {
	e := b.entries.Ptr(idx)
	if e.slots[ChannelColor] >= 0 {
		b.colors.Release(e.slots[ChannelColor])
		e.slots[ChannelColor] = -1
	}
	slot, ok := b.colors.Alloc(c)
	if !ok {
		return ErrCapacityExhausted
	}
	e.slots[ChannelColor] = slot
	return nil
}

// remove releases every slot held by entry idx and the entry itself.
func (b *baselineTable) remove(idx int) {
	e := b.entries.Ptr(idx)
	if e == nil {
		return
	}
	for ch, slot := range e.slots {
		if slot < 0 {
			continue
		}
		if Channel(ch) == ChannelColor {
			b.colors.Release(slot)
		} else {
			b.vecs[ch].Release(slot)
		}
	}
	b.entries.Release(idx)
}

// dropIfEmpty removes an entry that holds no channel.
func (b *baselineTable) dropIfEmpty(idx int) {
	e := b.entries.Ptr(idx)
	if e == nil {
		return
	}
	for _, slot := range e.slots {
		if slot >= 0 {
			return
		}
	}
	b.entries.Release(idx)
}

func (b *baselineTable) reset() {
	b.entries.Reset()
	b.colors.Reset()
	for _, p := range b.vecs {
		p.Reset()
	}
}

// --- Scheduler baseline API ---

// Save captures the target's current live value for every channel in
// channels and stores it as the target's baseline, replacing any earlier
// baseline of those channels. A color requested on a node without a color
// accessor reports ErrMissingAccessor; the other channels are still saved.
func (s *Scheduler) Save(target Target, channels ChannelSet) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if !validTarget(target) {
		s.log.Error("baseline save skipped: invalid target")
		return ErrInvalidTarget
	}
	idx, created, err := s.baselines.ensure(target)
	if err != nil {
		s.log.Error("baseline save failed", "target", targetName(target), "err", err)
		return err
	}

	var errs []error
	for ch := ChannelPosition; ch < numChannels; ch++ {
		if !channels.Has(ch) {
			continue
		}
		if ch == ChannelColor {
			c, ok := readColor(target, ColorKindAuto)
			if !ok {
				errs = append(errs, fmt.Errorf("save %s: %w", ch, ErrMissingAccessor))
				continue
			}
			if err := s.baselines.storeColor(idx, c); err != nil {
				errs = append(errs, fmt.Errorf("save %s: %w", ch, err))
			}
			continue
		}
		if err := s.baselines.storeVec(idx, ch, readVec(target, ch)); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", ch, err))
		}
	}
	s.baselines.dropIfEmpty(idx)
	s.logBaseline(target, created, errs)
	return errors.Join(errs...)
}

// DefineTransform stores v as the target's baseline for a transform channel
// (position, rotation or scale) without reading the live value.
func (s *Scheduler) DefineTransform(target Target, ch Channel, v Vec3) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if ch > ChannelScale {
		return fmt.Errorf("canvasanim: DefineTransform: %s is not a transform channel", ch)
	}
	if !validTarget(target) {
		s.log.Error("baseline define skipped: invalid target")
		return ErrInvalidTarget
	}
	idx, created, err := s.baselines.ensure(target)
	if err == nil {
		err = s.baselines.storeVec(idx, ch, v)
		s.baselines.dropIfEmpty(idx)
	}
	if err != nil {
		s.log.Error("baseline define failed", "target", targetName(target), "channel", ch.String(), "err", err)
		return err
	}
	s.logBaseline(target, created, nil)
	return nil
}

// DefineColor stores c as the target's color baseline without reading the
// live value. The node does not need a color accessor until Reset.
func (s *Scheduler) DefineColor(target Target, c Color) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if !validTarget(target) {
		s.log.Error("baseline define skipped: invalid target")
		return ErrInvalidTarget
	}
	idx, created, err := s.baselines.ensure(target)
	if err == nil {
		err = s.baselines.storeColor(idx, c)
		s.baselines.dropIfEmpty(idx)
	}
	if err != nil {
		s.log.Error("baseline define failed", "target", targetName(target), "channel", "color", "err", err)
		return err
	}
	s.logBaseline(target, created, nil)
	return nil
}

// Reset writes the stored baseline back onto the target for every channel in
// channels. Channels without a baseline are left untouched.
func (s *Scheduler) Reset(target Target, channels ChannelSet) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if !validTarget(target) {
		s.log.Error("baseline reset skipped: invalid target")
		return ErrInvalidTarget
	}
	idx := s.baselines.find(target)
	if idx < 0 {
		s.log.Error("baseline not found", "target", targetName(target))
		return ErrMissingBaseline
	}
	e := s.baselines.entries.Ptr(idx)

	var errs []error
	for ch := ChannelPosition; ch < numChannels; ch++ {
		if !channels.Has(ch) || e.slots[ch] < 0 {
			continue
		}
		if ch == ChannelColor {
			if !writeColor(target, ColorKindAuto, s.baselines.colors.Get(e.slots[ch])) {
				errs = append(errs, fmt.Errorf("reset %s: %w", ch, ErrMissingAccessor))
			}
			continue
		}
		writeVec(target, ch, s.baselines.vecs[ch].Get(e.slots[ch]))
	}
	if len(errs) > 0 {
		s.log.Warn("baseline reset incomplete", "target", targetName(target), "err", errors.Join(errs...))
	}
	return errors.Join(errs...)
}

// Remove releases every baseline slot held for target and forgets it.
func (s *Scheduler) Remove(target Target) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if target == nil {
		s.log.Error("baseline remove skipped: invalid target")
		return ErrInvalidTarget
	}
	idx := s.baselines.find(target)
	if idx < 0 {
		s.log.Error("baseline not found", "target", targetName(target))
		return ErrMissingBaseline
	}
	s.baselines.remove(idx)
	s.log.Debug("baseline removed", "target", targetName(target))
	return nil
}

// HasBaseline reports whether target has a baseline entry.
func (s *Scheduler) HasBaseline(target Target) bool {
	if !s.initialized || target == nil {
		return false
	}
	return s.baselines.find(target) >= 0
}

// BaselineTransform returns the stored baseline of a transform channel.
func (s *Scheduler) BaselineTransform(target Target, ch Channel) (Vec3, bool) {
	if !s.initialized || target == nil {
		return Vec3{}, false
	}
	return s.baselines.vec(target, ch)
}

// BaselineColor returns the stored color baseline.
func (s *Scheduler) BaselineColor(target Target) (Color, bool) {
	if !s.initialized || target == nil {
		return Color{}, false
	}
	return s.baselines.color(target)
}

func (s *Scheduler) logBaseline(target Target, created bool, errs []error) {
	msg := "baseline updated"
	if created {
		msg = "baseline created"
	}
	if len(errs) > 0 {
		s.log.Warn(msg, "target", targetName(target), "err", errors.Join(errs...))
		return
	}
	s.log.Debug(msg, "target", targetName(target))
}

// readVec reads a transform channel from the target.
func readVec(t Target, ch Channel) Vec3 {
	switch ch {
	case ChannelRotation:
		return t.Rotation()
	case ChannelScale:
		return t.Scale()
	default:
		return t.Position()
	}
}

// writeVec writes a transform channel to the target.
func writeVec(t Target, ch Channel, v Vec3) {
	switch ch {
	case ChannelRotation:
		t.SetRotation(v)
	case ChannelScale:
		t.SetScale(v)
	default:
		t.SetPosition(v)
	}
}
