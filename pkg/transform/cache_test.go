package transform

import (
	"sync"
	"testing"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

func TestCacheHitReturnsSameInstance(t *testing.T) {
	c := NewCache(4)
	a := c.GetOrCreate(mustView(t, nil))
	b := c.GetOrCreate(mustView(t, nil))
	if a != b {
		t.Fatalf("equal ViewStates returned different transforms")
	}
	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 || st.Size != 1 {
		t.Fatalf("stats = %+v", st)
	}
	if st.HitRate() != 0.5 {
		t.Errorf("HitRate = %v", st.HitRate())
	}
}

func TestCacheExactEquality(t *testing.T) {
	c := NewCache(4)
	a := c.GetOrCreate(mustView(t, nil))
	b := c.GetOrCreate(mustView(t, func(p *view.Params) { p.ManualOffsetX = 1e-12 }))
	if a == b {
		t.Fatalf("near-equal ViewStates shared a transform")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	const capacity = 3
	c := NewCache(capacity)
	states := make([]view.ViewState, 5)
	for i := range states {
		i := i
		states[i] = mustView(t, func(p *view.Params) { p.PanOffsetX = float64(i) })
	}

	for _, vs := range states[:3] {
		c.GetOrCreate(vs)
	}
	// Touch 0 so 1 becomes the oldest.
	c.GetOrCreate(states[0])
	c.GetOrCreate(states[3])

	if c.Contains(states[1]) {
		t.Errorf("least recently used entry survived")
	}
	for _, i := range []int{0, 2, 3} {
		if !c.Contains(states[i]) {
			t.Errorf("entry %d evicted", i)
		}
	}

	c.GetOrCreate(states[4])
	st := c.Stats()
	if st.Size > capacity {
		t.Fatalf("size %d exceeds capacity %d", st.Size, capacity)
	}
	if st.Evictions != 2 {
		t.Errorf("evictions = %d, want 2", st.Evictions)
	}
	if c.Contains(states[2]) {
		t.Errorf("expected state 2 to be evicted next")
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache(0)
	if c.Stats().Capacity != DefaultCacheCapacity {
		t.Fatalf("capacity = %d", c.Stats().Capacity)
	}
	vs := mustView(t, nil)
	first := c.GetOrCreate(vs)
	c.Clear()
	if c.Stats().Size != 0 {
		t.Fatalf("Clear left %d entries", c.Stats().Size)
	}
	if again := c.GetOrCreate(vs); again == first {
		t.Errorf("transform survived Clear")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(8)
	states := make([]view.ViewState, 16)
	for i := range states {
		i := i
		states[i] = mustView(t, func(p *view.Params) { p.Zoom = float64(i + 1) })
	}
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				vs := states[(i+g)%len(states)]
				if tr := c.GetOrCreate(vs); tr.ViewState() != vs {
					t.Errorf("wrong transform for view")
					return
				}
			}
		}(g)
	}
	wg.Wait()
	if st := c.Stats(); st.Size > 8 || st.Hits+st.Misses != 800 {
		t.Fatalf("stats = %+v", st)
	}
}
