// Command spendlog-report exports reports from a spendlog database as CSV
// on stdout, or prints a single month's total.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"spendlog/internal/cli"
	"spendlog/internal/core"
	"spendlog/internal/log"
	"spendlog/internal/report"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentReport)

	cfg := cli.LoadAndValidateConfig(logger)

	var (
		kind  = flag.String("report", "breakdown", "report to produce: breakdown, trend or summary")
		from  = flag.String("from", "", "start date (YYYY-MM-DD), breakdown only")
		to    = flag.String("to", "", "end date (YYYY-MM-DD), breakdown only")
		year  = flag.Int("year", time.Now().Year(), "year, summary only")
		month = flag.Int("month", int(time.Now().Month()), "month (1-12), summary only")
	)
	flag.Parse()

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	reports := report.NewService(repo)
	ctx := context.Background()

	if err := run(ctx, reports, *kind, *from, *to, *year, *month); err != nil {
		logger.Error("Report failed", log.FieldError, err, "report", *kind)
		os.Exit(1)
	}
}

func run(ctx context.Context, reports *report.Service, kind, from, to string, year, month int) error {
	switch kind {
	case "breakdown":
		r, err := parseRange(from, to)
		if err != nil {
			return err
		}
		rows, err := reports.CategoryBreakdown(ctx, r)
		if err != nil {
			return err
		}
		return report.WriteBreakdownCSV(os.Stdout, rows)

	case "trend":
		rows, err := reports.MonthlyTrend(ctx)
		if err != nil {
			return err
		}
		return report.WriteTrendCSV(os.Stdout, rows)

	case "summary":
		total, err := reports.MonthlySummary(ctx, year, month)
		if err != nil {
			return err
		}
		_, err = fmt.Printf("%04d-%02d total: %s\n", year, month, total.String())
		return err

	default:
		return fmt.Errorf("unknown report %q", kind)
	}
}

func parseRange(from, to string) (core.DateRange, error) {
	var r core.DateRange
	if from == "" && to == "" {
		return r, nil
	}
	if from == "" || to == "" {
		return r, fmt.Errorf("both -from and -to are required when filtering by date")
	}
	f, err := core.ParseDate(from)
	if err != nil {
		return r, fmt.Errorf("invalid -from: %w", err)
	}
	t, err := core.ParseDate(to)
	if err != nil {
		return r, fmt.Errorf("invalid -to: %w", err)
	}
	r = core.DateRange{From: f, To: t}
	if err := r.Validate(); err != nil {
		return core.DateRange{}, err
	}
	return r, nil
}
