// Package report computes read-side aggregates over stored expenses:
// monthly summaries, category breakdowns and the month-by-month trend.
// Every call recomputes from storage; results are never patched in place.
package report

import (
	"context"
	"fmt"
	"sort"

	"spendlog/internal/core"
)

// ExpenseLister is the read-side slice of the storage contract.
type ExpenseLister interface {
	ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error)
}

type Service struct {
	lister ExpenseLister
}

func NewService(lister ExpenseLister) *Service {
	return &Service{lister: lister}
}

// MonthlySummary sums the amounts of all expenses within the given calendar
// month. A month with no records yields zero.
func (s *Service) MonthlySummary(ctx context.Context, year, month int) (core.Money, error) {
	if month < 1 || month > 12 {
		return core.Money{}, core.ErrInvalidDate
	}

	expenses, err := s.lister.ListExpenses(ctx, core.Filter{Range: core.MonthRange(year, month)})
	if err != nil {
		return core.Money{}, fmt.Errorf("monthly summary %d-%02d: %w", year, month, err)
	}

	var total core.Money
	for _, e := range expenses {
		total.Cents += e.Amount.Cents
	}
	return total, nil
}

// CategoryBreakdown sums amounts per category over a date range. Categories
// with no records are omitted. Rows are sorted by amount descending, then by
// name, so rendering is deterministic.
func (s *Service) CategoryBreakdown(ctx context.Context, r core.DateRange) ([]core.CategoryAmount, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	expenses, err := s.lister.ListExpenses(ctx, core.Filter{Range: r})
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}

	totals := make(map[string]int64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount.Cents
	}

	rows := make([]core.CategoryAmount, 0, len(totals))
	for category, cents := range totals {
		rows = append(rows, core.CategoryAmount{
			Category: category,
			Amount:   core.Money{Cents: cents},
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount.Cents != rows[j].Amount.Cents {
			return rows[i].Amount.Cents > rows[j].Amount.Cents
		}
		return rows[i].Category < rows[j].Category
	})

	return rows, nil
}

// MonthlyTrend buckets all recorded expenses by calendar month, ascending.
// Months with no records are omitted.
func (s *Service) MonthlyTrend(ctx context.Context) ([]core.MonthTotal, error) {
	expenses, err := s.lister.ListExpenses(ctx, core.Filter{})
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}

	type ym struct{ year, month int }
	totals := make(map[ym]int64)
	for _, e := range expenses {
		totals[ym{e.Date.Year(), e.Date.Month()}] += e.Amount.Cents
	}

	rows := make([]core.MonthTotal, 0, len(totals))
	for k, cents := range totals {
		rows = append(rows, core.MonthTotal{
			Year:  k.year,
			Month: k.month,
			Total: core.Money{Cents: cents},
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})

	return rows, nil
}
