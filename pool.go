package canvasanim

import "math/bits"

// Pool is a fixed-capacity slot allocator. Cells are addressed by index and
// allocated lowest-index-first. Occupancy is tracked in a bitmap, so no value
// of T is reserved to mean "free" and Alloc/Release never allocate.
type Pool[T any] struct {
	values []T
	used   []uint64
	n      int
	peak   int
}

// NewPool creates a pool with room for capacity values.
// A non-positive capacity yields a pool that is always full.
func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{
		values: make([]T, capacity),
		used:   make([]uint64, (capacity+63)/64),
	}
}

// Alloc stores v in the lowest free cell and returns its index.
// It returns false when every cell is occupied.
func (p *Pool[T]) Alloc(v T) (int, bool) {
	for w, word := range p.used {
		if word == ^uint64(0) {
			continue
		}
		i := w*64 + bits.TrailingZeros64(^word)
		if i >= len(p.values) {
			return -1, false
		}
		p.used[w] |= 1 << uint(i%64)
		p.values[i] = v
		p.n++
		if p.n > p.peak {
			p.peak = p.n
		}
		return i, true
	}
	return -1, false
}

// Release frees cell i and zeroes its value. Releasing a free or
// out-of-range cell is a no-op that reports false.
func (p *Pool[T]) Release(i int) bool {
	if !p.Occupied(i) {
		return false
	}
	p.used[i/64] &^= 1 << uint(i%64)
	var zero T
	p.values[i] = zero
	p.n--
	return true
}

// Occupied reports whether cell i holds a live value.
func (p *Pool[T]) Occupied(i int) bool {
	if i < 0 || i >= len(p.values) {
		return false
	}
	return p.used[i/64]&(1<<uint(i%64)) != 0
}

// Get returns the value in cell i. The result is the zero value when the
// cell is free.
func (p *Pool[T]) Get(i int) T {
	if !p.Occupied(i) {
		var zero T
		return zero
	}
	return p.values[i]
}

// Ptr returns a pointer to the live value in cell i, or nil when the cell is
// free. The pointer is valid until the cell is released.
func (p *Pool[T]) Ptr(i int) *T {
	if !p.Occupied(i) {
		return nil
	}
	return &p.values[i]
}

// Set overwrites the value in an occupied cell.
func (p *Pool[T]) Set(i int, v T) bool {
	if !p.Occupied(i) {
		return false
	}
	p.values[i] = v
	return true
}

// Each calls fn for every occupied cell in index order. fn may release the
// cell it is given.
func (p *Pool[T]) Each(fn func(i int, v *T)) {
	for w := range p.used {
		word := p.used[w]
		for word != 0 {
			b := bits.TrailingZeros64(word)
			word &^= 1 << uint(b)
			i := w*64 + b
			if p.Occupied(i) {
				fn(i, &p.values[i])
			}
		}
	}
}

// Next returns the first occupied index >= from, or -1 when there is none.
// It allows allocation-free iteration:
//
//	for i := p.Next(0); i >= 0; i = p.Next(i + 1) { ... }
func (p *Pool[T]) Next(from int) int {
	if from < 0 {
		from = 0
	}
	for w := from / 64; w < len(p.used); w++ {
		word := p.used[w]
		if w == from/64 {
			word &^= (1 << uint(from%64)) - 1
		}
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

// Reset frees every cell. The peak counter is kept.
func (p *Pool[T]) Reset() {
	clear(p.values)
	clear(p.used)
	p.n = 0
}

// Len returns the number of occupied cells.
func (p *Pool[T]) Len() int {
	return p.n
}

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int {
	return len(p.values)
}

// Full reports whether no cell is free.
func (p *Pool[T]) Full() bool {
	return p.n >= len(p.values)
}

// Peak returns the highest Len observed since creation.
func (p *Pool[T]) Peak() int {
	return p.peak
}
