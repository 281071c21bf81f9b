package cache

import (
	"sync"
	"testing"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 42)

	if v, ok := c.Get("a"); !ok || v != 42 {
		t.Errorf("Get(a) = %d, %v; want 42, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}

	c.Set("a", 7)
	if v, _ := c.Get("a"); v != 7 {
		t.Errorf("replaced value = %d, want 7", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[int, []float64](4)
	calls := 0
	create := func() []float64 {
		calls++
		return []float64{1, 2}
	}

	first := c.GetOrCreate(3, create)
	second := c.GetOrCreate(3, create)
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if &first[0] != &second[0] {
		t.Error("GetOrCreate returned a different table on a hit")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // b becomes the oldest
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 || s.Len != 2 {
		t.Errorf("stats = %+v, want 1 eviction and 2 entries", s)
	}
}

func TestCacheDeleteClear(t *testing.T) {
	c := New[string, int](0)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") || c.Delete("a") {
		t.Error("Delete should succeed once")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	c.Set("z", 26)
	if v, ok := c.Get("z"); !ok || v != 26 {
		t.Error("cache unusable after Clear")
	}
}

func TestCacheStats(t *testing.T) {
	c := New[int, int](8)
	if s := c.Stats(); s.HitRate != 0 {
		t.Errorf("initial hit rate = %v", s.HitRate)
	}
	c.Set(1, 1)
	c.Get(1)
	c.Get(2)
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.HitRate != 0.5 || s.Capacity != 8 {
		t.Errorf("stats = %+v", s)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := (g*31 + i) % 32
				got := c.GetOrCreate(k, func() int { return k * 2 })
				if got != k*2 {
					t.Errorf("GetOrCreate(%d) = %d", k, got)
					return
				}
			}
		}()
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}
