// Package ports declares the storage interfaces the services and HTTP
// handlers depend on. Backends in internal/memory and internal/storage
// implement all of them.
package ports

import (
	"context"

	"pengeplan/internal/core"
)

type (
	LedgerStore interface {
		ListLedger(ctx context.Context) ([]core.LedgerItem, error)
		// AddLedgerItem assigns an id when the item has none and returns the stored item.
		AddLedgerItem(ctx context.Context, item core.LedgerItem) (core.LedgerItem, error)
		DeleteLedgerItem(ctx context.Context, id string) error
	}

	BillStore interface {
		ListBills(ctx context.Context) ([]core.Bill, error)
		AddBill(ctx context.Context, b core.Bill) (core.Bill, error)
		SetBillStatus(ctx context.Context, id string, status core.BillStatus) error
		DeleteBill(ctx context.Context, id string) error
	}

	DebtStore interface {
		ListDebts(ctx context.Context) ([]core.Debt, error)
		AddDebt(ctx context.Context, d core.Debt) (core.Debt, error)
		DeleteDebt(ctx context.Context, id string) error
	}

	BalanceSheetStore interface {
		ListAssets(ctx context.Context) ([]core.Asset, error)
		AddAsset(ctx context.Context, a core.Asset) (core.Asset, error)
		DeleteAsset(ctx context.Context, id string) error
		ListLiabilities(ctx context.Context) ([]core.Liability, error)
		AddLiability(ctx context.Context, l core.Liability) (core.Liability, error)
		DeleteLiability(ctx context.Context, id string) error
	}

	// PlanStore keeps computed payoff plans. LatestPlan returns
	// core.ErrNotFound when nothing was saved for the strategy.
	PlanStore interface {
		SavePlan(ctx context.Context, p core.SavedPlan) (core.SavedPlan, error)
		LatestPlan(ctx context.Context, strategy core.Strategy) (core.SavedPlan, error)
	}

	// Store is everything a backend provides.
	Store interface {
		LedgerStore
		BillStore
		DebtStore
		BalanceSheetStore
		PlanStore
		Ping(ctx context.Context) error
	}
)
