package memory

import (
	"context"
	"sync"

	"household/internal/core"
	"household/internal/sheets"
)

var _ sheets.ExpenseMirror = (*Store)(nil)

// Store is an in-process mirror used when no spreadsheet is configured.
type Store struct {
	mu    sync.Mutex
	order []string
	rows  map[string][]string
}

func New() *Store {
	return &Store{rows: make(map[string][]string)}
}

func (s *Store) UpsertExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.rows[e.ID] = sheets.Row(e)
	return nil
}

// DeleteExpense removes the row; unknown IDs are ignored.
func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return nil
	}
	delete(s.rows, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) ExpenseIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...), nil
}

// Rows returns the header followed by every row in insertion order.
func (s *Store) Rows() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, 0, len(s.order)+1)
	out = append(out, append([]string(nil), sheets.Header...))
	for _, id := range s.order {
		out = append(out, append([]string(nil), s.rows[id]...))
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
