package state

import "sync"

// EntityStore holds one entity collection plus request status. Every
// transition is synchronous and applied under the lock; the collection is
// replaced wholesale on Succeeded, so readers always see a coherent list.
//
// Start hands out a monotonic request token and Succeeded/Failed only apply
// when they carry the latest one, so a slow response that loses the race
// against a newer fetch is discarded instead of clobbering fresher data.
type EntityStore[T any] struct {
	mu      sync.Mutex
	idOf    func(T) int
	items   []T
	loading bool
	err     string
	token   uint64
	sel     *T
}

func NewEntityStore[T any](idOf func(T) int) *EntityStore[T] {
	return &EntityStore[T]{idOf: idOf}
}

func (s *EntityStore[T]) Start() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	s.loading = true
	s.err = ""
	return s.token
}

func (s *EntityStore[T]) Succeeded(token uint64, items []T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	s.items = append([]T(nil), items...)
	s.loading = false
	s.err = ""
	return true
}

// Failed records the error but leaves the collection untouched:
// stale-but-available data beats a blank screen.
func (s *EntityStore[T]) Failed(token uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return false
	}
	s.loading = false
	s.err = message
	return true
}

func (s *EntityStore[T]) Created(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// Updated replaces the element whose id matches; no-op if absent.
func (s *EntityStore[T]) Updated(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.idOf(item)
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items[i] = item
			return
		}
	}
}

func (s *EntityStore[T]) Removed(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if s.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Hydrate preloads the collection without touching loading or error.
// Used at startup to surface the last persisted snapshot.
func (s *EntityStore[T]) Hydrate(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T(nil), items...)
}

func (s *EntityStore[T]) Select(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = &item
}

func (s *EntityStore[T]) Selected() (item T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel == nil {
		return
	}
	return *s.sel, true
}

func (s *EntityStore[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}

func (s *EntityStore[T]) Find(id int) (item T, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if s.idOf(it) == id {
			return it, true
		}
	}
	return
}

func (s *EntityStore[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *EntityStore[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *EntityStore[T]) Snapshot() (items []T, loading bool, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...), s.loading, s.err
}
