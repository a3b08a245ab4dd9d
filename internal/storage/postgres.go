package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pengeplan/internal/core"
)

// PostgresRepository stores records in a hosted Postgres database through a
// pgx connection pool. Rows are listed in insertion order.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(ctx context.Context, dsn string) (*PostgresRepository, error) {
	if err := RunPostgresMigrations(dsn); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepository) ListLedger(ctx context.Context) ([]core.LedgerItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, type, amount, category, date FROM ledger_items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list ledger items: %w", err)
	}
	defer rows.Close()

	var items []core.LedgerItem
	for rows.Next() {
		var (
			it   core.LedgerItem
			date *time.Time
		)
		if err := rows.Scan(&it.ID, &it.Type, &it.Amount, &it.Category, &date); err != nil {
			return nil, fmt.Errorf("scan ledger item: %w", err)
		}
		if date != nil {
			it.Date = core.DateOf(*date)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) AddLedgerItem(ctx context.Context, it core.LedgerItem) (core.LedgerItem, error) {
	if err := it.Validate(); err != nil {
		return core.LedgerItem{}, err
	}
	it.ID = newID(it.ID)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ledger_items (id, type, amount, category, date) VALUES ($1, $2, $3, $4, $5)`,
		it.ID, string(it.Type), it.Amount, it.Category, dateArg(it.Date))
	if err != nil {
		return core.LedgerItem{}, fmt.Errorf("create ledger item: %w", err)
	}
	slog.InfoContext(ctx, "Ledger item saved to Postgres", "id", it.ID, "type", it.Type, "amount", it.Amount)
	return it, nil
}

func (r *PostgresRepository) DeleteLedgerItem(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_items WHERE id = $1`, id)
	return tagAffected("delete ledger item", tag, err)
}

func (r *PostgresRepository) ListBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, amount, status, due_date, recurrence_rule FROM bills ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []core.Bill
	for rows.Next() {
		var (
			b   core.Bill
			due time.Time
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Amount, &b.Status, &due, &b.RecurrenceRule); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		b.DueDate = core.DateOf(due)
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func (r *PostgresRepository) AddBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	b.ID = newID(b.ID)
	if b.Status == "" {
		b.Status = core.BillPlanned
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO bills (id, name, amount, status, due_date, recurrence_rule) VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Name, b.Amount, string(b.Status), b.DueDate.Time, string(b.RecurrenceRule))
	if err != nil {
		return core.Bill{}, fmt.Errorf("create bill: %w", err)
	}
	slog.InfoContext(ctx, "Bill saved to Postgres", "id", b.ID, "name", b.Name, "due_date", b.DueDate.String())
	return b, nil
}

func (r *PostgresRepository) SetBillStatus(ctx context.Context, id string, status core.BillStatus) error {
	if !status.Valid() {
		return core.ErrInvalidStatus
	}
	tag, err := r.pool.Exec(ctx, `UPDATE bills SET status = $1 WHERE id = $2`, string(status), id)
	return tagAffected("update bill status", tag, err)
}

func (r *PostgresRepository) DeleteBill(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bills WHERE id = $1`, id)
	return tagAffected("delete bill", tag, err)
}

func (r *PostgresRepository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, creditor, principal, min_payment, interest_rate_apr FROM debts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	debts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Debt, error) {
		var d core.Debt
		err := row.Scan(&d.ID, &d.Creditor, &d.Principal, &d.MinPayment, &d.InterestRateAPR)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan debts: %w", err)
	}
	return debts, nil
}

func (r *PostgresRepository) AddDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	d.ID = newID(d.ID)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO debts (id, creditor, principal, min_payment, interest_rate_apr) VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Creditor, d.Principal, d.MinPayment, d.InterestRateAPR)
	if err != nil {
		return core.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	slog.InfoContext(ctx, "Debt saved to Postgres", "id", d.ID, "creditor", d.Creditor, "principal", d.Principal)
	return d, nil
}

func (r *PostgresRepository) DeleteDebt(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM debts WHERE id = $1`, id)
	return tagAffected("delete debt", tag, err)
}

func (r *PostgresRepository) ListAssets(ctx context.Context) ([]core.Asset, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, value FROM assets ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	assets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Asset, error) {
		var a core.Asset
		err := row.Scan(&a.ID, &a.Name, &a.Value)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan assets: %w", err)
	}
	return assets, nil
}

func (r *PostgresRepository) AddAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	a.ID = newID(a.ID)
	_, err := r.pool.Exec(ctx, `INSERT INTO assets (id, name, value) VALUES ($1, $2, $3)`, a.ID, a.Name, a.Value)
	if err != nil {
		return core.Asset{}, fmt.Errorf("create asset: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) DeleteAsset(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return tagAffected("delete asset", tag, err)
}

func (r *PostgresRepository) ListLiabilities(ctx context.Context) ([]core.Liability, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, amount FROM liabilities ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list liabilities: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (core.Liability, error) {
		var l core.Liability
		err := row.Scan(&l.ID, &l.Name, &l.Amount)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan liabilities: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) AddLiability(ctx context.Context, l core.Liability) (core.Liability, error) {
	if err := l.Validate(); err != nil {
		return core.Liability{}, err
	}
	l.ID = newID(l.ID)
	_, err := r.pool.Exec(ctx, `INSERT INTO liabilities (id, name, amount) VALUES ($1, $2, $3)`, l.ID, l.Name, l.Amount)
	if err != nil {
		return core.Liability{}, fmt.Errorf("create liability: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) DeleteLiability(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM liabilities WHERE id = $1`, id)
	return tagAffected("delete liability", tag, err)
}

func (r *PostgresRepository) SavePlan(ctx context.Context, p core.SavedPlan) (core.SavedPlan, error) {
	p.ID = newID(p.ID)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	body, err := json.Marshal(p.Plan)
	if err != nil {
		return core.SavedPlan{}, fmt.Errorf("encode plan: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO payoff_plans (id, strategy, extra, input_hash, plan, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, string(p.Strategy), p.Extra, p.InputHash, body, p.CreatedAt)
	if err != nil {
		return core.SavedPlan{}, fmt.Errorf("create payoff plan: %w", err)
	}
	slog.InfoContext(ctx, "Payoff plan saved", "id", p.ID, "strategy", p.Strategy, "total_months", p.Plan.TotalMonths)
	return p, nil
}

func (r *PostgresRepository) LatestPlan(ctx context.Context, strategy core.Strategy) (core.SavedPlan, error) {
	var (
		p    core.SavedPlan
		body []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, strategy, extra, input_hash, plan, created_at
		 FROM payoff_plans WHERE strategy = $1 ORDER BY seq DESC LIMIT 1`,
		string(strategy)).Scan(&p.ID, &p.Strategy, &p.Extra, &p.InputHash, &body, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.SavedPlan{}, core.ErrNotFound
	}
	if err != nil {
		return core.SavedPlan{}, fmt.Errorf("get latest payoff plan: %w", err)
	}
	if err := json.Unmarshal(body, &p.Plan); err != nil {
		return core.SavedPlan{}, fmt.Errorf("decode plan %s: %w", p.ID, err)
	}
	return p, nil
}

// dateArg maps the zero Date to SQL NULL.
func dateArg(d core.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time
}

func tagAffected(op string, tag pgconn.CommandTag, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affected(op, tag.RowsAffected(), nil)
}
