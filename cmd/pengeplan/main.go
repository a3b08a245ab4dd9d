package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"pengeplan/internal/cli"
	apphttp "pengeplan/internal/http"
	"pengeplan/internal/log"
	"pengeplan/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	result := cli.InitBackend(ctx, logger, cfg)
	caches := cli.NewPlanCaches(ctx, logger, cfg)
	rules := cli.LoadRules(logger, cfg)

	planner := services.NewPlanner(result.Backend, caches.Plans, caches.Comparisons)
	srv := apphttp.NewServer(":"+cfg.Port, result.Backend, planner, apphttp.Options{
		Logger: logger.WithComponent(log.ComponentHTTP),
		Rules:  rules,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting pengeplan server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	cli.Shutdown(logger, caches.Close, result.Cleanup)
	if err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
}
