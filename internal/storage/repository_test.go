package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendlog/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func expense(date core.Date, cents int64, category string) core.Expense {
	return core.Expense{
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Description: "test",
	}
}

func TestInsertAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertExpense(ctx, expense(core.NewDate(2025, 1, 10), 1234, "food"))
	require.NoError(t, err)
	assert.Positive(t, id)

	id2, err := repo.InsertExpense(ctx, expense(core.NewDate(2025, 1, 11), 500, "transport"))
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)

	all, err := repo.ListExpenses(ctx, core.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Insertion order
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, id2, all[1].ID)
	assert.Equal(t, int64(1234), all[0].Amount.Cents)
	assert.Equal(t, "food", all[0].Category)
	assert.Equal(t, "2025-01-10", all[0].Date.String())
	assert.Equal(t, "test", all[0].Description)
}

func TestGetExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertExpense(ctx, expense(core.NewDate(2025, 2, 1), 999, "bills"))
	require.NoError(t, err)

	got, err := repo.GetExpense(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "bills", got.Category)

	_, err = repo.GetExpense(ctx, id+100)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertExpense(ctx, expense(core.NewDate(2025, 3, 5), 700, "food"))
	require.NoError(t, err)

	updated := expense(core.NewDate(2025, 4, 6), 800, "transport")
	updated.ID = id
	updated.Description = "changed"
	require.NoError(t, repo.UpdateExpense(ctx, updated))

	got, err := repo.GetExpense(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-06", got.Date.String())
	assert.Equal(t, int64(800), got.Amount.Cents)
	assert.Equal(t, "transport", got.Category)
	assert.Equal(t, "changed", got.Description)

	// Absent id leaves storage unchanged
	missing := updated
	missing.ID = id + 100
	missing.Amount = core.Money{Cents: 1}
	assert.ErrorIs(t, repo.UpdateExpense(ctx, missing), core.ErrNotFound)

	got, err = repo.GetExpense(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(800), got.Amount.Cents)
}

func TestDeleteExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertExpense(ctx, expense(core.NewDate(2025, 5, 1), 100, "food"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteExpense(ctx, id))

	all, err := repo.ListExpenses(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, repo.DeleteExpense(ctx, id), core.ErrNotFound)
}

func TestListExpensesFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []core.Expense{
		expense(core.NewDate(2025, 1, 5), 100, "food"),
		expense(core.NewDate(2025, 1, 20), 200, "transport"),
		expense(core.NewDate(2025, 2, 3), 300, "food"),
		expense(core.NewDate(2025, 3, 14), 400, "bills"),
	}
	for _, e := range seed {
		_, err := repo.InsertExpense(ctx, e)
		require.NoError(t, err)
	}

	jan, err := repo.ListExpenses(ctx, core.Filter{Range: core.MonthRange(2025, 1)})
	require.NoError(t, err)
	assert.Len(t, jan, 2)

	food, err := repo.ListExpenses(ctx, core.Filter{Category: "food"})
	require.NoError(t, err)
	assert.Len(t, food, 2)

	janFood, err := repo.ListExpenses(ctx, core.Filter{
		Range:    core.MonthRange(2025, 1),
		Category: "food",
	})
	require.NoError(t, err)
	require.Len(t, janFood, 1)
	assert.Equal(t, int64(100), janFood[0].Amount.Cents)

	from := core.NewDate(2025, 2, 1)
	later, err := repo.ListExpenses(ctx, core.Filter{Range: core.DateRange{From: from}})
	require.NoError(t, err)
	assert.Len(t, later, 2)
}

func TestListCategories(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	names, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	// Seeded defaults
	assert.Contains(t, names, "Food")
	assert.Contains(t, names, "Transport")
	assert.Contains(t, names, "Others")

	_, err = repo.InsertExpense(ctx, expense(core.NewDate(2025, 1, 1), 100, "Subscriptions"))
	require.NoError(t, err)

	names, err = repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "Subscriptions")
}

func TestMigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// Reopening an already-migrated database must not fail
	repo, err = NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Close())
}
