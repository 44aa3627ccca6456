package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/lineup/pkg/metrics"
)

// MemoryStore is an in-memory RosterStore. Rows keep insertion order; an
// index map gives O(1) lookup by ID.
type MemoryStore struct {
	mu      sync.RWMutex
	rows    []Row
	index   map[string]int // id -> position in rows
	maxRows int
	newID   func() string
}

var _ RosterStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		index: make(map[string]int),
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace implements RosterStore.
func (s *MemoryStore) Replace(_ context.Context, rows []Row) ([]Row, error) {
	if s.maxRows > 0 && len(rows) > s.maxRows {
		return nil, fmt.Errorf("%w: %d rows exceeds limit %d", ErrRosterFull, len(rows), s.maxRows)
	}

	fresh := make([]Row, len(rows))
	index := make(map[string]int, len(rows))
	for i, r := range rows {
		r.ID = s.newID()
		fresh[i] = r
		index[r.ID] = i
	}

	s.mu.Lock()
	s.rows = fresh
	s.index = index
	s.mu.Unlock()

	metrics.UpdateRosterRows(len(fresh))
	return slices.Clone(fresh), nil
}

// Add implements RosterStore.
func (s *MemoryStore) Add(_ context.Context, row Row) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxRows > 0 && len(s.rows) >= s.maxRows {
		return Row{}, fmt.Errorf("%w: limit %d", ErrRosterFull, s.maxRows)
	}
	row.ID = s.newID()
	s.index[row.ID] = len(s.rows)
	s.rows = append(s.rows, row)

	metrics.UpdateRosterRows(len(s.rows))
	return row, nil
}

// Update implements RosterStore.
func (s *MemoryStore) Update(_ context.Context, id string, row Row) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Row{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	row.ID = id
	s.rows[i] = row
	return row, nil
}

// Delete implements RosterStore.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.rows = slices.Delete(s.rows, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.rows); j++ {
		s.index[s.rows[j].ID] = j
	}

	metrics.UpdateRosterRows(len(s.rows))
	return nil
}

// List implements RosterStore.
func (s *MemoryStore) List(_ context.Context) []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Clear implements RosterStore.
func (s *MemoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	s.rows = nil
	s.index = make(map[string]int)
	s.mu.Unlock()

	metrics.UpdateRosterRows(0)
}

// Count implements RosterStore.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
