// Package http is the presentation layer: an HTMX UI plus CSV export over
// the expense and report services. All state lives in storage; the current
// filter travels with each request, never in server globals.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"spendlog/internal/core"
	"spendlog/internal/middleware/security"
	"spendlog/internal/middleware/trace"
	appweb "spendlog/web"
)

// ExpenseAPI is the mutation/query surface the handlers need.
// services.ExpenseService satisfies it.
type ExpenseAPI interface {
	CreateExpense(ctx context.Context, e core.Expense) (int64, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Reporter is the read-side aggregation surface. report.Service satisfies it.
type Reporter interface {
	MonthlySummary(ctx context.Context, year, month int) (core.Money, error)
	CategoryBreakdown(ctx context.Context, r core.DateRange) ([]core.CategoryAmount, error)
	MonthlyTrend(ctx context.Context) ([]core.MonthTotal, error)
}

type Server struct {
	http.Server
	templates *template.Template
	expenses  ExpenseAPI
	reports   Reporter
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, expenses ExpenseAPI, reports Reporter) *Server {
	router := mux.NewRouter()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: router,
		},
		expenses: expenses,
		reports:  reports,
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	router.Use(trace.Middleware)
	router.Use(security.Headers(security.DefaultHeadersConfig()))

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		router.PathPrefix("/static/").Handler(security.StaticAssets(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", handleReady).Methods(http.MethodGet)

	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/expenses", s.handleCreateExpense).Methods(http.MethodPost)
	router.HandleFunc("/expenses/{id:[0-9]+}", s.handleUpdateExpense).Methods(http.MethodPut)
	router.HandleFunc("/expenses/{id:[0-9]+}", s.handleDeleteExpense).Methods(http.MethodDelete)

	// UI partials
	router.HandleFunc("/ui/expenses", s.handleExpenseTable).Methods(http.MethodGet)
	router.HandleFunc("/ui/month-overview", s.handleMonthOverview).Methods(http.MethodGet)

	// CSV exports
	router.HandleFunc("/export/breakdown.csv", s.handleBreakdownCSV).Methods(http.MethodGet)
	router.HandleFunc("/export/trend.csv", s.handleTrendCSV).Methods(http.MethodGet)

	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
