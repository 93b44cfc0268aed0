package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"spendlog/internal/core"
	"spendlog/internal/report"
)

func (s *Server) handleMonthOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	year, month := parseMonthParams(r.URL.Query())
	if month < 1 || month > 12 {
		unprocessable("Invalid month").Write(w)
		return
	}

	total, err := s.reports.MonthlySummary(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Month summary error", "error", err, "year", year, "month", month)
		internalError("Error loading overview").Write(w)
		return
	}

	breakdown, err := s.reports.CategoryBreakdown(r.Context(), core.MonthRange(year, month))
	if err != nil {
		slog.ErrorContext(r.Context(), "Category breakdown error", "error", err, "year", year, "month", month)
		internalError("Error loading overview").Write(w)
		return
	}

	trend, err := s.reports.MonthlyTrend(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly trend error", "error", err)
		internalError("Error loading overview").Write(w)
		return
	}

	var maxCents int64
	for _, row := range breakdown {
		if row.Amount.Cents > maxCents {
			maxCents = row.Amount.Cents
		}
	}
	var maxTrend int64
	for _, row := range trend {
		if row.Total.Cents > maxTrend {
			maxTrend = row.Total.Cents
		}
	}

	type bar struct {
		Label  string
		Amount string
		Width  int
	}
	data := struct {
		Year       int
		Month      int
		Total      string
		Categories []bar
		Trend      []bar
	}{
		Year:  year,
		Month: month,
		Total: total.String(),
	}
	for _, row := range breakdown {
		data.Categories = append(data.Categories, bar{
			Label:  row.Category,
			Amount: row.Amount.String(),
			Width:  barWidth(row.Amount.Cents, maxCents),
		})
	}
	for _, row := range trend {
		data.Trend = append(data.Trend, bar{
			Label:  fmt.Sprintf("%04d-%02d", row.Year, row.Month),
			Amount: row.Total.String(),
			Width:  barWidth(row.Total.Cents, maxTrend),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "month_overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "month_overview.html")
		internalError("Error rendering overview").Write(w)
	}
}

// barWidth converts an amount to a rounded percentage of the maximum,
// keeping tiny values visible.
func barWidth(cents, maxCents int64) int {
	if maxCents <= 0 || cents <= 0 {
		return 0
	}
	width := int((cents*100 + maxCents/2) / maxCents)
	if width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

func (s *Server) handleBreakdownCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid filter: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	rows, err := s.reports.CategoryBreakdown(r.Context(), filter.Range)
	if err != nil {
		slog.ErrorContext(r.Context(), "Breakdown export error", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="breakdown.csv"`)
	if err := report.WriteBreakdownCSV(w, rows); err != nil {
		slog.ErrorContext(r.Context(), "Breakdown CSV write error", "error", err)
	}
}

func (s *Server) handleTrendCSV(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.MonthlyTrend(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Trend export error", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trend.csv"`)
	if err := report.WriteTrendCSV(w, rows); err != nil {
		slog.ErrorContext(r.Context(), "Trend CSV write error", "error", err)
	}
}
