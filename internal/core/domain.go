package core

import (
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// MaxDescriptionLen bounds the free-text description field.
const MaxDescriptionLen = 200

var (
	ErrNotFound           = errors.New("expense not found")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyCategory      = errors.New("empty category")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidRange       = errors.New("invalid date range")
)

type (
	// Date is a calendar date at UTC midnight. The zero value means "not set".
	Date struct {
		time.Time
	}

	// DateRange is an inclusive interval. Either bound may be zero (open end).
	DateRange struct {
		From Date
		To   Date
	}

	// Filter selects expenses by optional date range and/or category.
	// Zero fields match everything.
	Filter struct {
		Range    DateRange
		Category string
	}

	// Expense is a single dated, categorized monetary outflow record.
	Expense struct {
		ID          int64 // assigned by storage, immutable
		Date        Date
		Amount      Money
		Category    string
		Description string // optional
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string, rejecting impossible calendar dates.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// MonthRange returns the inclusive range covering one calendar month.
func MonthRange(year, month int) DateRange {
	first := NewDate(year, month, 1)
	last := Date{Time: first.AddDate(0, 1, -1)}
	return DateRange{From: first, To: last}
}

func (r DateRange) Validate() error {
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From.Time) {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether d falls inside the range. Zero bounds are open.
func (r DateRange) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From.Time) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To.Time) {
		return false
	}
	return true
}

// IsZero reports whether both bounds are unset.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (f Filter) Validate() error {
	return f.Range.Validate()
}

// Matches reports whether e satisfies the filter conjunction.
func (f Filter) Matches(e Expense) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return f.Range.Contains(e.Date)
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// IsValidation reports whether err is one of the input validation errors,
// as opposed to a not-found or storage failure.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidDate,
		ErrInvalidAmount,
		ErrEmptyCategory,
		ErrDescriptionTooLong,
		ErrInvalidRange,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
