package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"spendlog/internal/core"
)

// WriteBreakdownCSV renders a category breakdown as CSV with a header row.
func WriteBreakdownCSV(w io.Writer, rows []core.CategoryAmount) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"category", "total"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.Category, row.Amount.String()}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteTrendCSV renders the monthly trend as CSV with a header row.
func WriteTrendCSV(w io.Writer, rows []core.MonthTotal) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"month", "total"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		month := fmt.Sprintf("%04d-%02d", row.Year, row.Month)
		if err := writer.Write([]string{month, row.Total.String()}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
