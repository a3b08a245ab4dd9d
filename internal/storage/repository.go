package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pengeplan/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) ListLedger(ctx context.Context) ([]core.LedgerItem, error) {
	rows, err := r.queries.ListLedgerItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ledger items: %w", err)
	}
	items := make([]core.LedgerItem, len(rows))
	for i, row := range rows {
		date, _ := core.ParseDate(row.Date)
		items[i] = core.LedgerItem{
			ID:       row.ID,
			Type:     core.LedgerType(row.Type),
			Amount:   row.Amount,
			Category: row.Category,
			Date:     date,
		}
	}
	return items, nil
}

func (r *SQLiteRepository) AddLedgerItem(ctx context.Context, it core.LedgerItem) (core.LedgerItem, error) {
	if err := it.Validate(); err != nil {
		return core.LedgerItem{}, err
	}
	it.ID = newID(it.ID)
	err := r.queries.CreateLedgerItem(ctx, CreateLedgerItemParams{
		ID:       it.ID,
		Type:     string(it.Type),
		Amount:   it.Amount,
		Category: it.Category,
		Date:     it.Date.String(),
	})
	if err != nil {
		return core.LedgerItem{}, fmt.Errorf("create ledger item: %w", err)
	}

	slog.InfoContext(ctx, "Ledger item saved to SQLite",
		"id", it.ID,
		"type", it.Type,
		"amount", it.Amount,
		"date", it.Date.String())
	return it, nil
}

func (r *SQLiteRepository) DeleteLedgerItem(ctx context.Context, id string) error {
	n, err := r.queries.DeleteLedgerItem(ctx, id)
	return affected("delete ledger item", n, err)
}

func (r *SQLiteRepository) ListBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := r.queries.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	bills := make([]core.Bill, len(rows))
	for i, row := range rows {
		due, _ := core.ParseDate(row.DueDate)
		bills[i] = core.Bill{
			ID:             row.ID,
			Name:           row.Name,
			Amount:         row.Amount,
			Status:         core.BillStatus(row.Status),
			DueDate:        due,
			RecurrenceRule: core.RecurrenceRule(row.RecurrenceRule),
		}
	}
	return bills, nil
}

func (r *SQLiteRepository) AddBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	b.ID = newID(b.ID)
	if b.Status == "" {
		b.Status = core.BillPlanned
	}
	err := r.queries.CreateBill(ctx, CreateBillParams{
		ID:             b.ID,
		Name:           b.Name,
		Amount:         b.Amount,
		Status:         string(b.Status),
		DueDate:        b.DueDate.String(),
		RecurrenceRule: string(b.RecurrenceRule),
	})
	if err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}

	slog.InfoContext(ctx, "Bill saved to SQLite",
		"id", b.ID,
		"name", b.Name,
		"amount", b.Amount,
		"due_date", b.DueDate.String())
	return b, nil
}

func (r *SQLiteRepository) SetBillStatus(ctx context.Context, id string, status core.BillStatus) error {
	if !status.Valid() {
		return core.ErrInvalidStatus
	}
	n, err := r.queries.UpdateBillStatus(ctx, string(status), id)
	if err := affected("update bill status", n, err); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Bill status updated", "id", id, "status", status)
	return nil
}

func (r *SQLiteRepository) DeleteBill(ctx context.Context, id string) error {
	n, err := r.queries.DeleteBill(ctx, id)
	return affected("delete bill", n, err)
}

func (r *SQLiteRepository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.queries.ListDebts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	debts := make([]core.Debt, len(rows))
	for i, row := range rows {
		debts[i] = core.Debt{
			ID:              row.ID,
			Creditor:        row.Creditor,
			Principal:       row.Principal,
			MinPayment:      row.MinPayment,
			InterestRateAPR: row.InterestRateApr,
		}
	}
	return debts, nil
}

func (r *SQLiteRepository) AddDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	d.ID = newID(d.ID)
	err := r.queries.CreateDebt(ctx, CreateDebtParams{
		ID:              d.ID,
		Creditor:        d.Creditor,
		Principal:       d.Principal,
		MinPayment:      d.MinPayment,
		InterestRateApr: d.InterestRateAPR,
	})
	if err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}

	slog.InfoContext(ctx, "Debt saved to SQLite",
		"id", d.ID,
		"creditor", d.Creditor,
		"principal", d.Principal)
	return d, nil
}

func (r *SQLiteRepository) DeleteDebt(ctx context.Context, id string) error {
	n, err := r.queries.DeleteDebt(ctx, id)
	return affected("delete debt", n, err)
}

func (r *SQLiteRepository) ListAssets(ctx context.Context) ([]core.Asset, error) {
	rows, err := r.queries.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	assets := make([]core.Asset, len(rows))
	for i, row := range rows {
		assets[i] = core.Asset{ID: row.ID, Name: row.Name, Value: row.Value}
	}
	return assets, nil
}

func (r *SQLiteRepository) AddAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	a.ID = newID(a.ID)
	if err := r.queries.CreateAsset(ctx, AssetRow{ID: a.ID, Name: a.Name, Value: a.Value}); err != nil {
		return core.Asset{}, fmt.Errorf("create asset: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) DeleteAsset(ctx context.Context, id string) error {
	n, err := r.queries.DeleteAsset(ctx, id)
	return affected("delete asset", n, err)
}

func (r *SQLiteRepository) ListLiabilities(ctx context.Context) ([]core.Liability, error) {
	rows, err := r.queries.ListLiabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list liabilities: %w", err)
	}
	out := make([]core.Liability, len(rows))
	for i, row := range rows {
		out[i] = core.Liability{ID: row.ID, Name: row.Name, Amount: row.Amount}
	}
	return out, nil
}

func (r *SQLiteRepository) AddLiability(ctx context.Context, l core.Liability) (core.Liability, error) {
	if err := l.Validate(); err != nil {
		return core.Liability{}, err
	}
	l.ID = newID(l.ID)
	if err := r.queries.CreateLiability(ctx, LiabilityRow{ID: l.ID, Name: l.Name, Amount: l.Amount}); err != nil {
		return core.Liability{}, fmt.Errorf("create liability: %w", err)
	}
	return l, nil
}

func (r *SQLiteRepository) DeleteLiability(ctx context.Context, id string) error {
	n, err := r.queries.DeleteLiability(ctx, id)
	return affected("delete liability", n, err)
}

func (r *SQLiteRepository) SavePlan(ctx context.Context, p core.SavedPlan) (core.SavedPlan, error) {
	p.ID = newID(p.ID)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(p.Plan)
	if err != nil {
		return core.SavedPlan{}, fmt.Errorf("encode plan: %w", err)
	}
	err = r.queries.CreatePayoffPlan(ctx, PayoffPlanRow{
		ID:        p.ID,
		Strategy:  string(p.Strategy),
		Extra:     p.Extra,
		InputHash: p.InputHash,
		PlanJson:  string(body),
		CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return core.SavedPlan{}, fmt.Errorf("create payoff plan: %w", err)
	}

	slog.InfoContext(ctx, "Payoff plan saved",
		"id", p.ID,
		"strategy", p.Strategy,
		"total_months", p.Plan.TotalMonths,
		"remaining_debts", p.Plan.RemainingDebts)
	return p, nil
}

func (r *SQLiteRepository) LatestPlan(ctx context.Context, strategy core.Strategy) (core.SavedPlan, error) {
	row, err := r.queries.LatestPayoffPlan(ctx, string(strategy))
	if errors.Is(err, sql.ErrNoRows) {
		return core.SavedPlan{}, core.ErrNotFound
	}
	if err != nil {
		return core.SavedPlan{}, fmt.Errorf("get latest payoff plan: %w", err)
	}
	p := core.SavedPlan{
		ID:        row.ID,
		Strategy:  core.Strategy(row.Strategy),
		Extra:     row.Extra,
		InputHash: row.InputHash,
	}
	if err := json.Unmarshal([]byte(row.PlanJson), &p.Plan); err != nil {
		return core.SavedPlan{}, fmt.Errorf("decode plan %s: %w", row.ID, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, row.CreatedAt)
	return p, nil
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// affected turns a zero-row write into core.ErrNotFound.
func affected(op string, n int64, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
