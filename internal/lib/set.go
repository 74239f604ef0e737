package lib

import (
	"sync"
)

// Set is thread-safe and can be passed by value. Elements are remembered in insertion
// order so AsSlice is deterministic.
type Set struct {
	data  map[string]struct{}
	order *[]string
	mu    *sync.RWMutex
}

func NewSet(elems ...string) Set {
	s := Set{
		data:  make(map[string]struct{}, len(elems)),
		order: &[]string{},
		mu:    &sync.RWMutex{},
	}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add inserts elem and reports whether it was not already present.
func (s Set) Add(elem string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[elem]; ok {
		return false
	}
	s.data[elem] = struct{}{}
	*s.order = append(*s.order, elem)
	return true
}

func (s Set) Contains(elem string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.data[elem]
	return exists
}

func (s Set) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// AsSlice returns the elements in the order they were first added.
func (s Set) AsSlice() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	elements := make([]string, len(*s.order))
	copy(elements, *s.order)
	return elements
}

// Clear empties the set in place, every copy of s observes the change.
func (s Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.data)
	*s.order = (*s.order)[:0]
}
