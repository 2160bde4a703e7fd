package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/cli"
	"finboard/internal/dashboard"
	apphttp "finboard/internal/http"
	"finboard/internal/log"
	"finboard/internal/metrics"
	"finboard/internal/report"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs.
func run() int {
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
		logger.Info("Report month pinned", log.FieldMonth, month.String())
	}

	m := metrics.New()
	svc := dashboard.New(be.Opener(), dashboard.Options{
		MaxInteractions: int64(cfg.MaxInteractions),
		Clock:           clock,
		WarnUnresolved:  cfg.ReportWarnUnresolved,
		Metrics:         m,
		Publisher:       be.Publisher,
		Logger:          logger,
	})

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Dashboard: svc,
		Ready:     be.Backend.Ping,
		Metrics:   m,
		Logger:    logger,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting finboard server",
			"port", cfg.Port, "backend", cfg.DataBackend, "max_interactions", cfg.MaxInteractions)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		return 1
	}
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
	return 0
}
