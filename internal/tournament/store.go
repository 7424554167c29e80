package tournament

import "sync"

// Store owns the tournament snapshot. Update is the only way to change it.
type Store struct {
	mu    sync.RWMutex
	state Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// State returns the current snapshot.
func (s *Store) State() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Update applies t to the current snapshot and stores the result.
// It returns the new snapshot.
func (s *Store) Update(t Transition) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := t(s.state)
	next.Version = s.state.Version + 1
	s.state = next

	return next
}
