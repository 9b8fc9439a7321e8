package core

import "sync"

// Store holds at most one Table. Replace swaps the whole table in one step,
// so readers see either the previous table or the new one, never a mix.
type Store struct {
	mu    sync.RWMutex
	table *Table
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Replace stores t and returns the table it replaced, if any.
func (s *Store) Replace(t *Table) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.table
	s.table = t
	return prev
}

// Snapshot returns the current table or ErrNoData.
func (s *Store) Snapshot() (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return nil, ErrNoData
	}
	return s.table, nil
}
