package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"spendlog/internal/core"
)

// parseExpenseForm builds an expense (without id) from submitted form values.
// Validation of the assembled expense happens in the service layer; this
// only rejects input that cannot be converted at all.
func parseExpenseForm(form url.Values) (core.Expense, error) {
	date, err := core.ParseDate(form.Get("date"))
	if err != nil {
		return core.Expense{}, err
	}

	cents, err := core.ParseDecimalToCents(form.Get("amount"))
	if err != nil {
		return core.Expense{}, err
	}

	return core.Expense{
		Date:        date,
		Amount:      core.Money{Cents: cents},
		Category:    sanitizeInput(form.Get("category")),
		Description: sanitizeInput(form.Get("description")),
	}, nil
}

// parseFilter extracts the optional date range and category conjunction from
// query parameters (from, to, category).
func parseFilter(query url.Values) (core.Filter, error) {
	var f core.Filter

	if v := strings.TrimSpace(query.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Filter{}, err
		}
		f.Range.From = d
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.Filter{}, err
		}
		f.Range.To = d
	}
	f.Category = sanitizeInput(query.Get("category"))

	if err := f.Validate(); err != nil {
		return core.Filter{}, err
	}
	return f, nil
}

// parseMonthParams extracts year/month from query parameters, defaulting to
// the current month.
func parseMonthParams(query url.Values) (year, month int) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
		}
	}
	return year, month
}

// pathID extracts the {id} route variable.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
