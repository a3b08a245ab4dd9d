package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pengeplan/internal/core"
	"pengeplan/internal/finance"
	"pengeplan/internal/ports"
)

// DefaultBillHorizon is how far ahead recurring bills are materialized.
const DefaultBillHorizon = 31 * 24 * time.Hour

// BillScheduler turns recurring bill templates into concrete bills and
// flags planned bills whose due date has passed.
type BillScheduler struct {
	store   ports.BillStore
	horizon time.Duration
}

func NewBillScheduler(store ports.BillStore, horizon time.Duration) *BillScheduler {
	if horizon <= 0 {
		horizon = DefaultBillHorizon
	}
	return &BillScheduler{store: store, horizon: horizon}
}

// RunResult reports what a Run changed.
type RunResult struct {
	Created       int `json:"created"`
	MarkedOverdue int `json:"marked_overdue"`
}

// Run materializes occurrences between now and now+horizon, then marks
// overdue bills. An occurrence already stored under the same name and due
// date is skipped, so repeated runs are idempotent.
func (s *BillScheduler) Run(ctx context.Context, now time.Time) (RunResult, error) {
	var res RunResult

	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return res, fmt.Errorf("list bills: %w", err)
	}

	existing := make(map[string]bool, len(bills))
	for _, b := range bills {
		existing[occurrenceKey(b)] = true
	}

	to := now.Add(s.horizon)
	for _, tmpl := range bills {
		if !tmpl.RecurrenceRule.Recurring() {
			continue
		}
		for _, occ := range finance.ExpandSeries(tmpl, now, to) {
			key := occurrenceKey(occ)
			if existing[key] {
				continue
			}
			occ.RecurrenceRule = core.RecurNone
			if _, err := s.store.AddBill(ctx, occ); err != nil {
				slog.ErrorContext(ctx, "Failed to create bill occurrence",
					"template_id", tmpl.ID,
					"name", tmpl.Name,
					"due_date", occ.DueDate.String(),
					"error", err)
				continue
			}
			existing[key] = true
			res.Created++
			slog.InfoContext(ctx, "Created bill from recurring template",
				"template_id", tmpl.ID,
				"name", occ.Name,
				"due_date", occ.DueDate.String(),
				"rule", tmpl.RecurrenceRule)
		}
	}

	n, err := s.markOverdue(ctx, bills, now)
	res.MarkedOverdue = n
	if err != nil {
		return res, err
	}

	slog.InfoContext(ctx, "Bill schedule run complete",
		"created", res.Created,
		"marked_overdue", res.MarkedOverdue,
		"total_checked", len(bills))
	return res, nil
}

// markOverdue flags planned bills due strictly before today.
func (s *BillScheduler) markOverdue(ctx context.Context, bills []core.Bill, now time.Time) (int, error) {
	today := core.DateOf(now)
	marked := 0
	for _, b := range bills {
		if b.Status != core.BillPlanned || b.DueDate.IsZero() || !b.DueDate.Midnight().Before(today.Time) {
			continue
		}
		if err := s.store.SetBillStatus(ctx, b.ID, core.BillOverdue); err != nil {
			return marked, fmt.Errorf("mark bill %s overdue: %w", b.ID, err)
		}
		marked++
	}
	return marked, nil
}

func occurrenceKey(b core.Bill) string {
	return b.Name + "|" + b.DueDate.String()
}
