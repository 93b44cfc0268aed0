package services

import (
	"context"

	"spendlog/internal/core"
)

// StubStore is an in-memory Store for tests.
type StubStore struct {
	nextID     int64
	expenses   map[int64]core.Expense
	categories []string
}

func NewStubStore() *StubStore {
	return &StubStore{
		expenses:   map[int64]core.Expense{},
		categories: []string{"Food", "Transport", "Bills", "Shopping", "Others"},
	}
}

func (s *StubStore) InsertExpense(ctx context.Context, e core.Expense) (int64, error) {
	s.nextID++
	e.ID = s.nextID
	s.expenses[e.ID] = e
	return e.ID, nil
}

func (s *StubStore) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	e, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, core.ErrNotFound
	}
	return e, nil
}

func (s *StubStore) UpdateExpense(ctx context.Context, e core.Expense) error {
	if _, ok := s.expenses[e.ID]; !ok {
		return core.ErrNotFound
	}
	s.expenses[e.ID] = e
	return nil
}

func (s *StubStore) DeleteExpense(ctx context.Context, id int64) error {
	if _, ok := s.expenses[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *StubStore) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	var out []core.Expense
	// Insertion order matches ascending ids
	for id := int64(1); id <= s.nextID; id++ {
		e, ok := s.expenses[id]
		if !ok {
			continue
		}
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *StubStore) ListCategories(ctx context.Context) ([]string, error) {
	return s.categories, nil
}
