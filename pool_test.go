package canvasanim

import "testing"

func TestPoolAllocLowestFirst(t *testing.T) {
	p := NewPool[int](4)
	for want := 0; want < 4; want++ {
		i, ok := p.Alloc(want * 10)
		if !ok || i != want {
			t.Fatalf("Alloc = (%d, %v), want (%d, true)", i, ok, want)
		}
	}
	if _, ok := p.Alloc(99); ok {
		t.Fatal("Alloc on full pool should fail")
	}
	if !p.Full() || p.Len() != 4 {
		t.Errorf("Full=%v Len=%d, want true 4", p.Full(), p.Len())
	}

	p.Release(2)
	p.Release(1)
	i, ok := p.Alloc(7)
	if !ok || i != 1 {
		t.Errorf("Alloc after release = (%d, %v), want (1, true)", i, ok)
	}
	if got := p.Get(1); got != 7 {
		t.Errorf("Get(1) = %d, want 7", got)
	}
}

func TestPoolReleaseTwice(t *testing.T) {
	p := NewPool[string](2)
	i, _ := p.Alloc("a")
	if !p.Release(i) {
		t.Fatal("first Release should succeed")
	}
	if p.Release(i) {
		t.Error("second Release should be a no-op")
	}
	if p.Release(-1) || p.Release(5) {
		t.Error("out of range Release should be a no-op")
	}
	if p.Len() != 0 {
		t.Errorf("Len = %d, want 0", p.Len())
	}
}

func TestPoolReleaseZeroesValue(t *testing.T) {
	p := NewPool[*Node](1)
	n := NewContainer("n")
	i, _ := p.Alloc(n)
	p.Release(i)
	if p.values[i] != nil {
		t.Error("released cell should not retain its value")
	}
	if p.Ptr(i) != nil {
		t.Error("Ptr of free cell should be nil")
	}
}

func TestPoolAcrossWords(t *testing.T) {
	p := NewPool[int](130)
	for i := 0; i < 130; i++ {
		if _, ok := p.Alloc(i); !ok {
			t.Fatalf("Alloc %d failed", i)
		}
	}
	if _, ok := p.Alloc(0); ok {
		t.Fatal("pool of 130 should be full")
	}
	p.Release(64)
	p.Release(129)
	if i, _ := p.Alloc(1); i != 64 {
		t.Errorf("Alloc = %d, want 64", i)
	}
	if i, _ := p.Alloc(1); i != 129 {
		t.Errorf("Alloc = %d, want 129", i)
	}
}

func TestPoolNextAndEach(t *testing.T) {
	p := NewPool[int](100)
	for i := 0; i < 100; i++ {
		p.Alloc(i)
	}
	for i := 0; i < 100; i++ {
		if i%7 != 0 {
			p.Release(i)
		}
	}

	var viaNext []int
	for i := p.Next(0); i >= 0; i = p.Next(i + 1) {
		viaNext = append(viaNext, i)
	}
	var viaEach []int
	p.Each(func(i int, v *int) {
		if *v != i {
			t.Errorf("value at %d = %d", i, *v)
		}
		viaEach = append(viaEach, i)
	})
	if len(viaNext) != 15 || len(viaEach) != 15 {
		t.Fatalf("visited %d/%d cells, want 15", len(viaNext), len(viaEach))
	}
	for k := range viaNext {
		if viaNext[k] != k*7 || viaEach[k] != k*7 {
			t.Errorf("visit %d = %d/%d, want %d", k, viaNext[k], viaEach[k], k*7)
		}
	}
	if got := p.Next(99); got != -1 {
		t.Errorf("Next(99) = %d, want -1", got)
	}
}

func TestPoolEachRelease(t *testing.T) {
	p := NewPool[int](10)
	for i := 0; i < 10; i++ {
		p.Alloc(i)
	}
	p.Each(func(i int, _ *int) { p.Release(i) })
	if p.Len() != 0 {
		t.Errorf("Len = %d after releasing inside Each, want 0", p.Len())
	}
}

func TestPoolPeakAndReset(t *testing.T) {
	p := NewPool[int](8)
	for i := 0; i < 5; i++ {
		p.Alloc(i)
	}
	p.Release(0)
	p.Release(1)
	p.Alloc(0)
	if p.Peak() != 5 {
		t.Errorf("Peak = %d, want 5", p.Peak())
	}
	p.Reset()
	if p.Len() != 0 || p.Peak() != 5 {
		t.Errorf("after Reset Len=%d Peak=%d, want 0 5", p.Len(), p.Peak())
	}
	if i, _ := p.Alloc(1); i != 0 {
		t.Errorf("Alloc after Reset = %d, want 0", i)
	}
}

func TestPoolZeroCapacity(t *testing.T) {
	p := NewPool[int](0)
	if _, ok := p.Alloc(1); ok {
		t.Error("zero-capacity pool should always be full")
	}
	if p.Next(0) != -1 {
		t.Error("Next on empty pool should be -1")
	}
}

func TestPoolSet(t *testing.T) {
	p := NewPool[int](2)
	i, _ := p.Alloc(1)
	if !p.Set(i, 5) || p.Get(i) != 5 {
		t.Error("Set on occupied cell failed")
	}
	if p.Set(1, 5) {
		t.Error("Set on free cell should fail")
	}
}

func TestPoolAllocReleaseZeroAlloc(t *testing.T) {
	p := NewPool[Vec3](64)
	result := testing.AllocsPerRun(100, func() {
		i, _ := p.Alloc(Vec3{1, 2, 3})
		p.Release(i)
	})
	if result > 0 {
		t.Errorf("Alloc/Release allocated %f times per run, want 0", result)
	}
}
