// Package services orchestrates validation and storage for expense
// mutations. Handlers talk to this layer, never to storage directly.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"spendlog/internal/core"
)

// Store is the storage contract the service depends on. The SQLite
// repository satisfies it; tests use the in-memory stub.
type Store interface {
	InsertExpense(ctx context.Context, e core.Expense) (int64, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type ExpenseService struct {
	store Store
}

func NewExpenseService(store Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense validates and persists a new expense, returning its id.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.InsertExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense created",
		"id", id,
		"date", e.Date.String(),
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return id, nil
}

// GetExpense returns a single expense by id.
func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.GetExpense(ctx, id)
}

// UpdateExpense validates and overwrites an existing expense in place.
// The id itself is immutable.
func (s *ExpenseService) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}

	slog.InfoContext(ctx, "Expense updated",
		"id", e.ID,
		"date", e.Date.String(),
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return nil
}

// DeleteExpense removes an expense permanently.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// ListExpenses returns expenses matching the filter in insertion order.
func (s *ExpenseService) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.store.ListExpenses(ctx, f)
}

// ListCategories returns the known category labels.
func (s *ExpenseService) ListCategories(ctx context.Context) ([]string, error) {
	return s.store.ListCategories(ctx)
}

// Close releases the underlying store if it holds resources.
func (s *ExpenseService) Close() error {
	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}
