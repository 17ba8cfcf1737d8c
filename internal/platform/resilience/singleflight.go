package resilience

import "sync"

// SingleFlight collapses concurrent calls with the same key into one
// execution whose result is shared by every waiter.
type SingleFlight[K comparable, V any] struct {
	mu    sync.Mutex
	calls map[K]*singleFlightCall[V]
}

type singleFlightCall[V any] struct {
	done  chan struct{}
	value V
	err   error
}

func NewSingleFlight[K comparable, V any]() *SingleFlight[K, V] {
	return &SingleFlight[K, V]{
		calls: make(map[K]*singleFlightCall[V]),
	}
}

// Do executes fn once per in-flight key. Concurrent callers with the
// same key block until the first call finishes and receive its result.
func (s *SingleFlight[K, V]) Do(key K, fn func() (V, error)) (V, error) {
	s.mu.Lock()
	if call, ok := s.calls[key]; ok {
		s.mu.Unlock()
		<-call.done
		return call.value, call.err
	}

	call := &singleFlightCall[V]{done: make(chan struct{})}
	s.calls[key] = call
	s.mu.Unlock()

	call.value, call.err = fn()
	close(call.done)

	s.mu.Lock()
	delete(s.calls, key)
	s.mu.Unlock()

	return call.value, call.err
}
