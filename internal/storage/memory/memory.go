// Package memory is an in-process record store with the same contract as the
// SQLite repository. Nothing survives Close.
package memory

import (
	"context"
	"sync"

	"expensetracker/internal/core"
)

type Store struct {
	mu     sync.Mutex
	lastID int64
	items  map[int64]core.ExpenseRecord
}

func New() *Store {
	return &Store{items: make(map[int64]core.ExpenseRecord)}
}

// NewWithRecords returns a store preloaded with records. Ids are kept and the
// counter continues after the highest one.
func NewWithRecords(records []core.ExpenseRecord) *Store {
	s := New()
	for _, r := range records {
		s.items[r.ID] = r
		if r.ID > s.lastID {
			s.lastID = r.ID
		}
	}
	return s
}

// Insert stores the record and returns its id. Ids are never reused.
func (s *Store) Insert(_ context.Context, date, category string, amount float64, description string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	s.items[s.lastID] = core.ExpenseRecord{
		ID:          s.lastID,
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: description,
	}
	return s.lastID, nil
}

func (s *Store) ListAll(_ context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.ExpenseRecord, 0, len(s.items))
	for _, r := range s.items {
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *Store) Close() error {
	return nil
}
