package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string, string](time.Minute)
	var calls atomic.Int32

	loader := func() (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad("same-key", loader)
			if err != nil {
				t.Errorf("GetOrLoad error: %v", err)
				return
			}
			if v != "value" {
				t.Errorf("unexpected loaded value %q", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[string, string](time.Minute)
	var calls atomic.Int32

	loader := func() (string, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad("k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad("k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetEvictsExpiredEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[string, int](time.Minute)
	current := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Set("k", 42)
	if v, ok := store.Get("k"); !ok || v != 42 {
		t.Fatalf("expected cached 42, got %d ok=%t", v, ok)
	}

	current = current.Add(2 * time.Minute)
	if _, ok := store.Get("k"); ok {
		t.Fatal("expected entry evicted after ttl")
	}
}
