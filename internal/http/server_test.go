package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendlog/internal/core"
	"spendlog/internal/report"
	"spendlog/internal/services"
)

func newTestServer(t *testing.T) (*Server, *services.ExpenseService) {
	t.Helper()
	svc := services.NewExpenseService(services.NewStubStore())
	srv := NewServer(":0", svc, report.NewService(svcLister{svc}))
	return srv, svc
}

// svcLister adapts the service to the report side.
type svcLister struct{ svc *services.ExpenseService }

func (l svcLister) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	return l.svc.ListExpenses(ctx, f)
}

func doRequest(t *testing.T, srv *Server, method, target, form string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func createForm(date, amount, category, description string) string {
	v := url.Values{}
	v.Set("date", date)
	v.Set("amount", amount)
	v.Set("category", category)
	v.Set("description", description)
	return v.Encode()
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rr := doRequest(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestIndexRenders(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := doRequest(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Add Expense")
	assert.Contains(t, rr.Body.String(), "Food")
}

func TestSecurityHeaders(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := doRequest(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rr.Header().Get("Content-Security-Policy"))
}

func TestCreateExpense(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/expenses",
		createForm("2025-04-10", "12.34", "Food", "lunch"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "success")
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "expenses:changed")
}

func TestCreateExpenseValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		form string
	}{
		{"bad amount", createForm("2025-04-10", "abc", "Food", "")},
		{"zero amount", createForm("2025-04-10", "0", "Food", "")},
		{"negative amount", createForm("2025-04-10", "-5", "Food", "")},
		{"bad date", createForm("2025-02-30", "1.00", "Food", "")},
		{"missing category", createForm("2025-04-10", "1.00", "", "")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, srv, http.MethodPost, "/expenses", tc.form)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Contains(t, rr.Body.String(), "error")
		})
	}
}

func TestCreateExpenseMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := doRequest(t, srv, http.MethodGet, "/expenses", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestUpdateExpense(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	id, err := svc.CreateExpense(ctx, core.Expense{
		Date:     core.NewDate(2025, 4, 10),
		Amount:   core.Money{Cents: 1000},
		Category: "Food",
	})
	require.NoError(t, err)

	rr := doRequest(t, srv, http.MethodPut, "/expenses/1",
		createForm("2025-05-01", "20.00", "Transport", "train"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got, err := svc.GetExpense(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01", got.Date.String())
	assert.Equal(t, int64(2000), got.Amount.Cents)
	assert.Equal(t, "Transport", got.Category)

	// The move from April to May is visible on the next overview load.
	rr = doRequest(t, srv, http.MethodGet, "/ui/month-overview?year=2025&month=4", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "0.00")

	rr = doRequest(t, srv, http.MethodGet, "/ui/month-overview?year=2025&month=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "20.00")
}

func TestUpdateExpenseNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := doRequest(t, srv, http.MethodPut, "/expenses/42",
		createForm("2025-05-01", "20.00", "Transport", ""))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteExpense(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, core.Expense{
		Date:     core.NewDate(2025, 4, 10),
		Amount:   core.Money{Cents: 1000},
		Category: "Food",
	})
	require.NoError(t, err)

	rr := doRequest(t, srv, http.MethodDelete, "/expenses/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("HX-Trigger"), "expenses:changed")

	all, err := svc.ListExpenses(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	rr = doRequest(t, srv, http.MethodDelete, "/expenses/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExpenseTablePartial(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	seed := []core.Expense{
		{Date: core.NewDate(2025, 4, 1), Amount: core.Money{Cents: 1000}, Category: "Food", Description: "groceries"},
		{Date: core.NewDate(2025, 5, 2), Amount: core.Money{Cents: 300}, Category: "Transport"},
	}
	for _, e := range seed {
		_, err := svc.CreateExpense(ctx, e)
		require.NoError(t, err)
	}

	rr := doRequest(t, srv, http.MethodGet, "/ui/expenses", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "groceries")
	assert.Contains(t, rr.Body.String(), "Transport")

	// Filter down to April food
	rr = doRequest(t, srv, http.MethodGet, "/ui/expenses?from=2025-04-01&to=2025-04-30&category=Food", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "groceries")
	assert.NotContains(t, rr.Body.String(), "Transport")

	// Inverted range
	rr = doRequest(t, srv, http.MethodGet, "/ui/expenses?from=2025-05-01&to=2025-04-01", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestMonthOverviewPartial(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	seed := []core.Expense{
		{Date: core.NewDate(2025, 4, 1), Amount: core.Money{Cents: 1000}, Category: "food"},
		{Date: core.NewDate(2025, 4, 15), Amount: core.Money{Cents: 550}, Category: "transport"},
	}
	for _, e := range seed {
		_, err := svc.CreateExpense(ctx, e)
		require.NoError(t, err)
	}

	rr := doRequest(t, srv, http.MethodGet, "/ui/month-overview?year=2025&month=4", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "15.50")
	assert.Contains(t, rr.Body.String(), "food")

	rr = doRequest(t, srv, http.MethodGet, "/ui/month-overview?year=2025&month=13", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestBreakdownCSVExport(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	seed := []core.Expense{
		{Date: core.NewDate(2025, 4, 1), Amount: core.Money{Cents: 1000}, Category: "food"},
		{Date: core.NewDate(2025, 4, 2), Amount: core.Money{Cents: 500}, Category: "food"},
		{Date: core.NewDate(2025, 4, 3), Amount: core.Money{Cents: 300}, Category: "transport"},
	}
	for _, e := range seed {
		_, err := svc.CreateExpense(ctx, e)
		require.NoError(t, err)
	}

	rr := doRequest(t, srv, http.MethodGet, "/export/breakdown.csv", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "category,total\nfood,15.00\ntransport,3.00\n", rr.Body.String())
}

func TestTrendCSVExport(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, core.Expense{
		Date:     core.NewDate(2025, 4, 1),
		Amount:   core.Money{Cents: 1000},
		Category: "food",
	})
	require.NoError(t, err)

	rr := doRequest(t, srv, http.MethodGet, "/export/trend.csv", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "month,total\n2025-04,10.00\n", rr.Body.String())
}
