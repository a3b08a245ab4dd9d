package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"pengeplan/internal/log"
	"pengeplan/internal/services"
)

// BillRunner is implemented by services.BillScheduler.
type BillRunner interface {
	Run(ctx context.Context, now time.Time) (services.RunResult, error)
}

// BillWorker runs a BillRunner on a cron schedule in a fixed location.
type BillWorker struct {
	runner   BillRunner
	cron     *cron.Cron
	location *time.Location
	timeout  time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// NewBillWorker parses schedule as a standard five-field cron expression.
func NewBillWorker(runner BillRunner, schedule string, location *time.Location, logger *log.Logger) (*BillWorker, error) {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	w := &BillWorker{
		runner:   runner,
		location: location,
		timeout:  5 * time.Minute,
		logger:   logger.WithComponent(log.ComponentScheduler),
		now:      time.Now,
	}
	w.cron = cron.New(cron.WithLocation(location))
	if _, err := w.cron.AddFunc(schedule, func() { w.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid bill schedule %q: %w", schedule, err)
	}
	return w, nil
}

// RunOnce materializes bills for the current day in the worker's location.
func (w *BillWorker) RunOnce(ctx context.Context) (services.RunResult, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	now := w.now().In(w.location)
	res, err := w.runner.Run(ctx, now)
	if err != nil {
		w.logger.ErrorContext(ctx, "Bill run failed", log.FieldError, err)
		return res, err
	}
	w.logger.InfoContext(ctx, "Bill run finished",
		"created", res.Created,
		"marked_overdue", res.MarkedOverdue,
		"day", now.Format("2006-01-02"))
	return res, nil
}

// Start runs the schedule in the background.
func (w *BillWorker) Start() {
	w.cron.Start()
	for _, e := range w.cron.Entries() {
		w.logger.Info("Bill schedule active", "next_run", e.Next)
	}
}

// Stop waits for a running job to finish or ctx to expire.
func (w *BillWorker) Stop(ctx context.Context) error {
	done := w.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
