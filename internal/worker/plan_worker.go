// Package worker runs the background jobs: plan recomputation driven by
// debts.changed messages and the scheduled bill materialization.
package worker

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"pengeplan/internal/amqp"
	"pengeplan/internal/log"
)

// Consumer delivers debts.changed messages until ctx is done.
type Consumer interface {
	ConsumeWithRetry(ctx context.Context, handler func(context.Context, *amqp.DebtsChangedMessage) error) error
}

// Recomputer is implemented by services.PlanRecomputer.
type Recomputer interface {
	HandleMessage(ctx context.Context, msg *amqp.DebtsChangedMessage) error
	Recompute(ctx context.Context) (int, error)
}

// PlanWorker keeps saved payoff plans current. It recomputes once at
// start, on every message, and on a fixed interval as a safety net for
// lost messages.
type PlanWorker struct {
	consumer   Consumer
	recomputer Recomputer
	interval   time.Duration
	logger     *log.Logger
}

// NewPlanWorker accepts a nil consumer; the worker then only polls.
func NewPlanWorker(consumer Consumer, recomputer Recomputer, interval time.Duration, logger *log.Logger) *PlanWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &PlanWorker{
		consumer:   consumer,
		recomputer: recomputer,
		interval:   interval,
		logger:     logger.WithComponent(log.ComponentWorker),
	}
}

// Run blocks until ctx is cancelled. It returns nil on a clean stop.
func (w *PlanWorker) Run(ctx context.Context) error {
	w.recompute(ctx, "startup")

	g, gctx := errgroup.WithContext(ctx)
	if w.consumer != nil {
		g.Go(func() error {
			return w.consumer.ConsumeWithRetry(gctx, w.handle)
		})
	} else {
		w.logger.Info("No message broker configured, relying on periodic recompute")
	}
	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				w.recompute(gctx, "interval")
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (w *PlanWorker) handle(ctx context.Context, msg *amqp.DebtsChangedMessage) error {
	w.logger.InfoContext(ctx, "Debts changed",
		"reason", msg.Reason,
		"debt_id", msg.DebtID)
	return w.recomputer.HandleMessage(ctx, msg)
}

func (w *PlanWorker) recompute(ctx context.Context, trigger string) {
	start := time.Now()
	saved, err := w.recomputer.Recompute(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "Plan recompute failed",
			log.FieldOperation, log.OpRecompute,
			"trigger", trigger,
			log.FieldError, err)
		return
	}
	w.logger.InfoContext(ctx, "Plan recompute finished",
		log.FieldOperation, log.OpRecompute,
		"trigger", trigger,
		"saved", saved,
		log.FieldDuration, time.Since(start).Milliseconds())
}
