// Package expansion tracks which nodes have had their children revealed.
package expansion

import (
	"sync"

	"github.com/psidex/learnpath/internal/lib"
)

// Store is the expansion state of one generation. Expanded ids only ever grow until
// Reset; pending ids are nodes known to have unmaterialized children.
type Store struct {
	// mu keeps the check-then-mark in MarkExpanded and NextPending atomic.
	mu       *sync.Mutex
	expanded lib.Set
	pending  lib.Set
	queue    *lib.Queue
}

func NewStore() *Store {
	return &Store{
		mu:       &sync.Mutex{},
		expanded: lib.NewSet(),
		pending:  lib.NewSet(),
		queue:    lib.NewQueue(),
	}
}

// MarkPending records ids as having children that are not in the scene yet. Ids that are
// already expanded are ignored.
func (s *Store) MarkPending(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if s.expanded.Contains(id) {
			continue
		}
		if s.pending.Add(id) {
			s.queue.Enqueue(id)
		}
	}
}

// MarkExpanded returns true if id was not expanded before.
func (s *Store) MarkExpanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded.Add(id)
}

func (s *Store) IsExpanded(id string) bool {
	return s.expanded.Contains(id)
}

func (s *Store) IsPending(id string) bool {
	return s.pending.Contains(id) && !s.expanded.Contains(id)
}

// Pending returns the pending ids that are still unexpanded, in the order they were marked.
func (s *Store) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, id := range s.pending.AsSlice() {
		if !s.expanded.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// NextPending pops the oldest pending id that has not been expanded since it was marked.
func (s *Store) NextPending() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		id, ok := s.queue.Dequeue()
		if !ok {
			return "", false
		}
		if !s.expanded.Contains(id) {
			return id, true
		}
	}
}

// Expanded returns expanded ids in expansion order.
func (s *Store) Expanded() []string {
	return s.expanded.AsSlice()
}

// Reset forgets everything, used when a new generation begins.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded.Clear()
	s.pending.Clear()
	s.queue = lib.NewQueue()
}
