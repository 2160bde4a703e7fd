// report-export builds the aggregate reports once and writes each of them
// to its own tab of a Google Sheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"finboard/internal/cli"
	"finboard/internal/dashboard"
	"finboard/internal/log"
	"finboard/internal/report"
	"finboard/internal/sheets"
	gsheet "finboard/internal/sheets/google"
	"finboard/internal/sheets/memory"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs.
func run() int {
	menu := flag.String("menu", report.ReportsEntry, "menu entry to export")
	dryRun := flag.Bool("dry-run", false, "build the tables without writing to Google Sheets")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext(context.Background(), logger)
	defer stop()

	be, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		return 1
	}
	defer func() {
		if err := be.Close(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	clock := report.SystemClock()
	if month, ok := cfg.FixedMonth(); ok {
		clock = report.FixedClock(time.Date(month.Year, month.Month, 15, 12, 0, 0, 0, time.UTC))
	}
	svc := dashboard.New(be.Opener(), dashboard.Options{
		Clock:          clock,
		WarnUnresolved: cfg.ReportWarnUnresolved,
		Publisher:      be.Publisher,
		Logger:         logger,
	})

	var w sheets.TableWriter
	if *dryRun {
		w = memory.New()
	} else {
		client, err := gsheet.NewClient(ctx, cfg.GoogleSpreadsheetID)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			return 1
		}
		w = client
	}

	n, err := export(ctx, svc, w, *menu)
	if err != nil {
		logger.Error("Export failed", log.FieldError, err, log.FieldMenu, *menu, log.FieldOperation, log.OpExport)
		return 1
	}
	logger.Info("Export complete", log.FieldMenu, *menu, "tables", n, "dry_run", *dryRun)
	return 0
}

// export runs one interaction and writes every built table. Sections that
// failed are skipped and reported together after the rest is written.
func export(ctx context.Context, svc *dashboard.Service, w sheets.TableWriter, menu string) (int, error) {
	page, err := svc.Interact(ctx, menu)
	if err != nil {
		return 0, err
	}

	tables := make([]report.Table, 0, len(page.Sections))
	for _, s := range page.Sections {
		if !s.Failed() {
			tables = append(tables, s.Table)
		}
	}
	if err := sheets.Export(ctx, w, tables); err != nil {
		return 0, err
	}
	if failed := page.Failed(); failed > 0 {
		return len(tables), fmt.Errorf("%d of %d reports failed", failed, len(page.Sections))
	}
	return len(tables), nil
}
