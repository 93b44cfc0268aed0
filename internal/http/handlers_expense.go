package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"spendlog/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	categories, err := s.expenses.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category list error", "error", err)
	}

	data := struct {
		Today      string
		Categories []string
	}{
		Today:      time.Now().Format("2006-01-02"),
		Categories: categories,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "path", r.URL.Path)
		badRequest("Invalid request format").Write(w)
		return
	}

	exp, err := parseExpenseForm(r.Form)
	if err != nil {
		unprocessable("Invalid input: " + err.Error()).Write(w)
		return
	}

	id, err := s.expenses.CreateExpense(r.Context(), exp)
	if err != nil {
		s.writeExpenseError(w, r, err, "create")
		return
	}

	msg := fmt.Sprintf("Saved #%d: %s %s (%s)",
		id,
		template.HTMLEscapeString(exp.Date.String()),
		exp.Amount.String(),
		template.HTMLEscapeString(exp.Category))

	NewHTMXResponse().
		TriggerExpensesChanged(exp.Date.Year(), exp.Date.Month()).
		BodyHTML(`<div class="success">` + msg + `</div>`).
		Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest("Invalid expense id").Write(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "path", r.URL.Path)
		badRequest("Invalid request format").Write(w)
		return
	}

	exp, err := parseExpenseForm(r.Form)
	if err != nil {
		unprocessable("Invalid input: " + err.Error()).Write(w)
		return
	}
	exp.ID = id

	if err := s.expenses.UpdateExpense(r.Context(), exp); err != nil {
		s.writeExpenseError(w, r, err, "update")
		return
	}

	NewHTMXResponse().
		TriggerExpensesChanged(exp.Date.Year(), exp.Date.Month()).
		BodyHTML(fmt.Sprintf(`<div class="success">Updated #%d</div>`, id)).
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequest("Invalid expense id").Write(w)
		return
	}

	// Look the record up first so the refresh trigger can carry its month.
	exp, err := s.expenses.GetExpense(r.Context(), id)
	if err != nil {
		s.writeExpenseError(w, r, err, "delete")
		return
	}

	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		s.writeExpenseError(w, r, err, "delete")
		return
	}

	NewHTMXResponse().
		TriggerExpensesChanged(exp.Date.Year(), exp.Date.Month()).
		BodyHTML(fmt.Sprintf(`<div class="success">Deleted #%d</div>`, id)).
		Write(w)
}

func (s *Server) handleExpenseTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		unprocessable("Invalid filter: " + err.Error()).Write(w)
		return
	}

	expenses, err := s.expenses.ListExpenses(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		internalError("Error loading expenses").Write(w)
		return
	}

	type row struct {
		ID          int64
		Date        string
		Amount      string
		Category    string
		Description string
	}
	data := struct {
		Rows     []row
		From     string
		To       string
		Category string
	}{
		From:     filter.Range.From.String(),
		To:       filter.Range.To.String(),
		Category: filter.Category,
	}
	for _, e := range expenses {
		data.Rows = append(data.Rows, row{
			ID:          e.ID,
			Date:        e.Date.String(),
			Amount:      e.Amount.String(),
			Category:    e.Category,
			Description: e.Description,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "expense_table.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "expense_table.html")
		internalError("Error rendering expenses").Write(w)
	}
}

// writeExpenseError maps service errors onto HTTP responses: stale ids to
// 404, bad input to 422, everything else to 500.
func (s *Server) writeExpenseError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		notFound("Expense not found").Write(w)
	case core.IsValidation(err):
		unprocessable("Invalid data: " + err.Error()).Write(w)
	default:
		slog.ErrorContext(r.Context(), "Expense operation failed",
			"error", err,
			"operation", op)
		internalError("Error saving expense").Write(w)
	}
}
