package cache

import (
	"sync"
	"testing"
)

func TestLRUGetPut(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	// b is now the oldest.
	c.Put("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %d, %v", v, ok)
	}
	c.Put("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("replaced value = %d, want 10", v)
	}

	st := c.Stats()
	if st.Len != 2 || st.Evictions != 1 || st.Misses != 1 || st.Hits != 3 {
		t.Errorf("stats = %+v", st)
	}
}

func TestLRUCapacityFloor(t *testing.T) {
	c := New[int, int](0)
	c.Put(1, 1)
	c.Put(2, 2)
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if _, ok := c.Get(2); !ok {
		t.Error("newest entry missing")
	}
}

func TestLRUClear(t *testing.T) {
	c := New[int, string](4)
	for i := range 4 {
		c.Put(i, "x")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear", c.Len())
	}
	c.Put(9, "y")
	if v, ok := c.Get(9); !ok || v != "y" {
		t.Error("cache unusable after Clear")
	}
}

func TestLRUConcurrent(t *testing.T) {
	c := New[int, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				k := (g*1000 + i) % 100
				c.Put(k, i)
				c.Get(k)
			}
		}()
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}
