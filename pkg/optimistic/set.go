package optimistic

import "sync"

// Set keeps one Resource per logical id, so edits to different journals or
// quests never supersede each other.
type Set[K comparable, T any] struct {
	mu    sync.Mutex
	clone func(T) T
	items map[K]*Resource[T]
}

func NewSet[K comparable, T any](clone func(T) T) *Set[K, T] {
	return &Set[K, T]{
		clone: clone,
		items: make(map[K]*Resource[T]),
	}
}

// Get returns the resource for id, creating it from initial when missing.
func (s *Set[K, T]) Get(id K, initial T) *Resource[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.items[id]; ok {
		return r
	}
	r := New(initial, s.clone)
	s.items[id] = r
	return r
}

// Lookup returns the resource for id if one exists.
func (s *Set[K, T]) Lookup(id K) (*Resource[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.items[id]
	return r, ok
}

// Drop detaches and forgets the resource for id.
func (s *Set[K, T]) Drop(id K) {
	s.mu.Lock()
	r, ok := s.items[id]
	delete(s.items, id)
	s.mu.Unlock()
	if ok {
		r.Detach()
	}
}

// DetachAll detaches every resource, for example on logout.
func (s *Set[K, T]) DetachAll() {
	s.mu.Lock()
	items := s.items
	s.items = make(map[K]*Resource[T])
	s.mu.Unlock()
	for _, r := range items {
		r.Detach()
	}
}

func (s *Set[K, T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
