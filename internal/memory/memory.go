// Package memory is an in-process backend used for development and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"pengeplan/internal/core"
)

// Seed is the on-disk shape of data/seed.json.
type Seed struct {
	Ledger      []core.LedgerItem `json:"ledger"`
	Bills       []core.Bill       `json:"bills"`
	Debts       []core.Debt       `json:"debts"`
	Assets      []core.Asset      `json:"assets"`
	Liabilities []core.Liability  `json:"liabilities"`
}

type Store struct {
	mu          sync.Mutex
	ledger      []core.LedgerItem
	bills       []core.Bill
	debts       []core.Debt
	assets      []core.Asset
	liabilities []core.Liability
	plans       []core.SavedPlan
}

func New() *Store {
	return &Store{}
}

// NewFromSeed fills a store from seed. Records without an id get one.
func NewFromSeed(seed Seed) *Store {
	s := New()
	for _, it := range seed.Ledger {
		it.ID = idOrNew(it.ID)
		s.ledger = append(s.ledger, it)
	}
	for _, b := range seed.Bills {
		b.ID = idOrNew(b.ID)
		if b.Status == "" {
			b.Status = core.BillPlanned
		}
		s.bills = append(s.bills, b)
	}
	for _, d := range seed.Debts {
		d.ID = idOrNew(d.ID)
		s.debts = append(s.debts, d)
	}
	for _, a := range seed.Assets {
		a.ID = idOrNew(a.ID)
		s.assets = append(s.assets, a)
	}
	for _, l := range seed.Liabilities {
		l.ID = idOrNew(l.ID)
		s.liabilities = append(s.liabilities, l)
	}
	return s
}

// NewFromFiles loads base/seed.json. A missing file yields an empty store;
// a malformed one is an error.
func NewFromFiles(base string) (*Store, error) {
	data, err := os.ReadFile(filepath.Join(base, "seed.json"))
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return NewFromSeed(seed), nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) ListLedger(_ context.Context) ([]core.LedgerItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ledger), nil
}

func (s *Store) AddLedgerItem(_ context.Context, it core.LedgerItem) (core.LedgerItem, error) {
	if err := it.Validate(); err != nil {
		return core.LedgerItem{}, err
	}
	it.ID = idOrNew(it.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = append(s.ledger, it)
	return it, nil
}

func (s *Store) DeleteLedgerItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(&s.ledger, func(it core.LedgerItem) bool { return it.ID == id })
}

func (s *Store) ListBills(_ context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.bills), nil
}

func (s *Store) AddBill(_ context.Context, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	b.ID = idOrNew(b.ID)
	if b.Status == "" {
		b.Status = core.BillPlanned
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = append(s.bills, b)
	return b, nil
}

func (s *Store) SetBillStatus(_ context.Context, id string, status core.BillStatus) error {
	if !status.Valid() {
		return core.ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == id {
			s.bills[i].Status = status
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) DeleteBill(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(&s.bills, func(b core.Bill) bool { return b.ID == id })
}

func (s *Store) ListDebts(_ context.Context) ([]core.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.debts), nil
}

func (s *Store) AddDebt(_ context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	d.ID = idOrNew(d.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debts = append(s.debts, d)
	return d, nil
}

func (s *Store) DeleteDebt(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(&s.debts, func(d core.Debt) bool { return d.ID == id })
}

func (s *Store) ListAssets(_ context.Context) ([]core.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.assets), nil
}

func (s *Store) AddAsset(_ context.Context, a core.Asset) (core.Asset, error) {
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	a.ID = idOrNew(a.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append(s.assets, a)
	return a, nil
}

func (s *Store) DeleteAsset(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(&s.assets, func(a core.Asset) bool { return a.ID == id })
}

func (s *Store) ListLiabilities(_ context.Context) ([]core.Liability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.liabilities), nil
}

func (s *Store) AddLiability(_ context.Context, l core.Liability) (core.Liability, error) {
	if err := l.Validate(); err != nil {
		return core.Liability{}, err
	}
	l.ID = idOrNew(l.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liabilities = append(s.liabilities, l)
	return l, nil
}

func (s *Store) DeleteLiability(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(&s.liabilities, func(l core.Liability) bool { return l.ID == id })
}

func (s *Store) SavePlan(_ context.Context, p core.SavedPlan) (core.SavedPlan, error) {
	p.ID = idOrNew(p.ID)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append(s.plans, p)
	return p, nil
}

// LatestPlan returns the most recently saved plan for strategy.
func (s *Store) LatestPlan(_ context.Context, strategy core.Strategy) (core.SavedPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.plans) - 1; i >= 0; i-- {
		if s.plans[i].Strategy == strategy {
			return s.plans[i], nil
		}
	}
	return core.SavedPlan{}, core.ErrNotFound
}

func remove[T any](items *[]T, match func(T) bool) error {
	i := slices.IndexFunc(*items, match)
	if i < 0 {
		return core.ErrNotFound
	}
	*items = slices.Delete(*items, i, i+1)
	return nil
}
