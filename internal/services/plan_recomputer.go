package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pengeplan/internal/amqp"
	"pengeplan/internal/cache"
	"pengeplan/internal/core"
	"pengeplan/internal/finance"
	"pengeplan/internal/ports"
)

// PlanRecomputer keeps the saved payoff plans in step with the debt list.
type PlanRecomputer struct {
	debts     ports.DebtStore
	plans     ports.PlanStore
	extra     float64
	maxMonths int
}

func NewPlanRecomputer(debts ports.DebtStore, plans ports.PlanStore, extra float64, maxMonths int) *PlanRecomputer {
	return &PlanRecomputer{
		debts:     debts,
		plans:     plans,
		extra:     finance.ValidateAmount(extra),
		maxMonths: maxMonths,
	}
}

// HandleMessage is the AMQP consumer callback.
func (r *PlanRecomputer) HandleMessage(ctx context.Context, msg *amqp.DebtsChangedMessage) error {
	slog.InfoContext(ctx, "Recomputing payoff plans", "reason", msg.Reason, "debt_id", msg.DebtID)
	_, err := r.Recompute(ctx)
	return err
}

// Recompute simulates every strategy and saves the plans whose inputs
// changed since the last save. It returns how many plans were saved.
func (r *PlanRecomputer) Recompute(ctx context.Context) (int, error) {
	debts, err := r.debts.ListDebts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list debts: %w", err)
	}
	hash := cache.Key("debts", r.extra, r.maxMonths, debts)

	saved := 0
	for _, strategy := range finance.Strategies() {
		latest, err := r.plans.LatestPlan(ctx, strategy)
		switch {
		case err == nil && latest.InputHash == hash:
			slog.DebugContext(ctx, "Saved plan is current", "strategy", strategy)
			continue
		case err != nil && !errors.Is(err, core.ErrNotFound):
			return saved, fmt.Errorf("load latest %s plan: %w", strategy, err)
		}

		plan := finance.Plan(strategy, debts, r.extra, r.maxMonths)
		_, err = r.plans.SavePlan(ctx, core.SavedPlan{
			Strategy:  strategy,
			Extra:     r.extra,
			InputHash: hash,
			Plan:      plan,
		})
		if err != nil {
			return saved, fmt.Errorf("save %s plan: %w", strategy, err)
		}
		saved++
	}
	return saved, nil
}
