package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"pengeplan/internal/cache"
	"pengeplan/internal/core"
	"pengeplan/internal/finance"
	"pengeplan/internal/ports"
)

// DefaultUpcomingDays is the dashboard's bill window when none is given.
const DefaultUpcomingDays = 30

// Planner serves payoff plans and dashboard summaries over a Store. Plans
// are cached by a hash of the debt list and parameters; concurrent requests
// for the same key share one simulation.
type Planner struct {
	store       ports.Store
	plans       cache.Cache[core.PayoffPlan]
	comparisons cache.Cache[finance.Comparison]
	group       singleflight.Group
}

func NewPlanner(store ports.Store, plans cache.Cache[core.PayoffPlan], comparisons cache.Cache[finance.Comparison]) *Planner {
	return &Planner{
		store:       store,
		plans:       plans,
		comparisons: comparisons,
	}
}

// Plan simulates strategy over the stored debts.
func (p *Planner) Plan(ctx context.Context, strategy core.Strategy, extra float64, maxMonths int) (core.PayoffPlan, error) {
	debts, err := p.store.ListDebts(ctx)
	if err != nil {
		return core.PayoffPlan{}, fmt.Errorf("list debts: %w", err)
	}
	key := cache.Key("plan", strategy, extra, maxMonths, debts)
	if plan, ok := p.plans.Get(key); ok {
		slog.DebugContext(ctx, "Payoff plan cache hit", "key", key)
		return plan, nil
	}

	v, _, _ := p.group.Do(key, func() (any, error) {
		start := time.Now()
		plan := finance.Plan(strategy, debts, extra, maxMonths)
		p.plans.Set(key, plan)
		slog.InfoContext(ctx, "Payoff plan computed",
			"strategy", plan.Strategy,
			"debts", len(debts),
			"total_months", plan.TotalMonths,
			"remaining_debts", plan.RemainingDebts,
			"duration_ms", time.Since(start).Milliseconds())
		return plan, nil
	})
	return v.(core.PayoffPlan), nil
}

// Compare runs both strategies over the stored debts.
func (p *Planner) Compare(ctx context.Context, extra float64, maxMonths int) (finance.Comparison, error) {
	debts, err := p.store.ListDebts(ctx)
	if err != nil {
		return finance.Comparison{}, fmt.Errorf("list debts: %w", err)
	}
	key := cache.Key("compare", extra, maxMonths, debts)
	if c, ok := p.comparisons.Get(key); ok {
		return c, nil
	}
	v, _, _ := p.group.Do(key, func() (any, error) {
		c := finance.CompareStrategies(debts, extra, maxMonths)
		p.comparisons.Set(key, c)
		return c, nil
	})
	return v.(finance.Comparison), nil
}

// Dashboard is the one-call overview the front page renders.
type Dashboard struct {
	Balance    finance.Balance         `json:"balance"`
	Categories []finance.CategoryTotal `json:"categories"`
	Bills      finance.BillTotals      `json:"bills"`
	Upcoming   []core.Bill             `json:"upcoming_bills"`
	Debts      finance.DebtSummary     `json:"debts"`
	NetWorth   finance.NetWorth        `json:"net_worth"`
}

// Dashboard loads every collection concurrently and aggregates them.
// days <= 0 means DefaultUpcomingDays.
func (p *Planner) Dashboard(ctx context.Context, from time.Time, days int) (Dashboard, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}

	var (
		ledger      []core.LedgerItem
		bills       []core.Bill
		debts       []core.Debt
		assets      []core.Asset
		liabilities []core.Liability
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ledger, err = p.store.ListLedger(gctx)
		return wrap("list ledger", err)
	})
	g.Go(func() (err error) {
		bills, err = p.store.ListBills(gctx)
		return wrap("list bills", err)
	})
	g.Go(func() (err error) {
		debts, err = p.store.ListDebts(gctx)
		return wrap("list debts", err)
	})
	g.Go(func() (err error) {
		assets, err = p.store.ListAssets(gctx)
		return wrap("list assets", err)
	})
	g.Go(func() (err error) {
		liabilities, err = p.store.ListLiabilities(gctx)
		return wrap("list liabilities", err)
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Balance:    finance.MonthlyBalance(ledger),
		Categories: finance.CategoryTotals(ledger),
		Bills:      finance.BillsTotals(bills),
		Upcoming:   finance.UpcomingBills(bills, from, days),
		Debts:      finance.DebtTotals(debts),
		NetWorth:   finance.CalculateNetWorth(assets, liabilities),
	}, nil
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
