package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"pengeplan/internal/amqp"
	"pengeplan/internal/core"
	"pengeplan/internal/ports"
)

// DebtEventPublisher announces debt list changes to the plan worker.
type DebtEventPublisher interface {
	PublishDebtsChanged(ctx context.Context, reason, debtID string) error
}

// DebtService writes debts and then publishes a debts.changed event. A
// failed publish is logged; the write has already succeeded.
type DebtService struct {
	store     ports.DebtStore
	publisher DebtEventPublisher
	closers   []io.Closer
}

// NewDebtService wires store and publisher. publisher may be nil. closers
// are closed in order by Close.
func NewDebtService(store ports.DebtStore, publisher DebtEventPublisher, closers ...io.Closer) *DebtService {
	return &DebtService{
		store:     store,
		publisher: publisher,
		closers:   closers,
	}
}

func (s *DebtService) AddDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	saved, err := s.store.AddDebt(ctx, d)
	if err != nil {
		return core.Debt{}, fmt.Errorf("save debt: %w", err)
	}
	s.publish(ctx, amqp.ReasonDebtAdded, saved.ID)
	return saved, nil
}

func (s *DebtService) DeleteDebt(ctx context.Context, id string) error {
	if err := s.store.DeleteDebt(ctx, id); err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	s.publish(ctx, amqp.ReasonDebtDeleted, id)
	return nil
}

func (s *DebtService) publish(ctx context.Context, reason, id string) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "No event publisher, skipping debts changed message", "debt_id", id)
		return
	}
	if err := s.publisher.PublishDebtsChanged(ctx, reason, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish debts changed message",
			"reason", reason, "debt_id", id, "error", err)
	}
}

// Close releases the store and the AMQP connection.
func (s *DebtService) Close() error {
	var errs []error
	for _, c := range s.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close debt service: %w", err)
	}
	return nil
}
