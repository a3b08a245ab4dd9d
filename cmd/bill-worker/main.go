package main

import (
	"context"
	"os"
	"time"

	"pengeplan/internal/cli"
	"pengeplan/internal/log"
	"pengeplan/internal/services"
	"pengeplan/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentScheduler)
	logger.Info("Starting bill-worker")
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	loc, err := time.LoadLocation(cfg.BillTimezone)
	if err != nil {
		logger.Error("Invalid bill timezone", log.FieldError, err)
		os.Exit(1)
	}

	result := cli.InitBackend(ctx, logger, cfg)
	scheduler := services.NewBillScheduler(result.Backend, cfg.BillHorizon)

	w, err := worker.NewBillWorker(scheduler, cfg.BillSchedule, loc, logger)
	if err != nil {
		logger.Error("Failed to create bill worker", log.FieldError, err)
		cli.Shutdown(logger, result.Cleanup)
		os.Exit(1)
	}

	// Catch up immediately so a restart never skips a day.
	if _, err := w.RunOnce(ctx); err != nil {
		logger.Warn("Startup bill run failed", log.FieldError, err)
	}
	w.Start()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	cli.Shutdown(logger, func() error { return w.Stop(stopCtx) }, result.Cleanup)
}
