package adapters

import (
	"context"

	"pengeplan/internal/core"
	"pengeplan/internal/ports"
	"pengeplan/internal/services"
)

// EventedStore is a ports.Store whose debt writes go through DebtService,
// so every add or delete publishes debts.changed. Everything else reaches
// the underlying store directly.
type EventedStore struct {
	ports.Store
	service *services.DebtService
}

func NewEventedStore(store ports.Store, service *services.DebtService) *EventedStore {
	return &EventedStore{
		Store:   store,
		service: service,
	}
}

func (a *EventedStore) AddDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	return a.service.AddDebt(ctx, d)
}

func (a *EventedStore) DeleteDebt(ctx context.Context, id string) error {
	return a.service.DeleteDebt(ctx, id)
}
