package main

import (
	"os"

	"pengeplan/internal/amqp"
	"pengeplan/internal/cli"
	"pengeplan/internal/log"
	"pengeplan/internal/services"
	"pengeplan/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting plan-worker")
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	result := cli.InitBackend(ctx, logger, cfg)

	// The worker consumes on its own connection; the backend's client only
	// publishes.
	var consumer worker.Consumer
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, recomputing on interval only", log.FieldError, err)
		} else {
			amqpClient = client
			consumer = client
		}
	}

	recomputer := services.NewPlanRecomputer(result.Backend, result.Backend, cfg.PlanExtraPayment, cfg.PlanMaxMonths)
	w := worker.NewPlanWorker(consumer, recomputer, cfg.PlanRecomputeInterval, logger)

	err := w.Run(ctx)

	cleanups := []func() error{result.Cleanup}
	if amqpClient != nil {
		cleanups = append(cleanups, amqpClient.Close)
	}
	cli.Shutdown(logger, cleanups...)
	if err != nil {
		logger.Error("Plan worker stopped", log.FieldError, err)
		os.Exit(1)
	}
}
