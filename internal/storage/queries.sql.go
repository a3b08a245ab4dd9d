package storage

import (
	"context"
)

const listLedgerItems = `SELECT id, type, amount, category, date FROM ledger_items ORDER BY rowid`

func (q *Queries) ListLedgerItems(ctx context.Context) ([]LedgerItemRow, error) {
	rows, err := q.db.QueryContext(ctx, listLedgerItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LedgerItemRow
	for rows.Next() {
		var i LedgerItemRow
		if err := rows.Scan(&i.ID, &i.Type, &i.Amount, &i.Category, &i.Date); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createLedgerItem = `INSERT INTO ledger_items (id, type, amount, category, date) VALUES (?, ?, ?, ?, ?)`

type CreateLedgerItemParams struct {
	ID       string
	Type     string
	Amount   float64
	Category string
	Date     string
}

func (q *Queries) CreateLedgerItem(ctx context.Context, arg CreateLedgerItemParams) error {
	_, err := q.db.ExecContext(ctx, createLedgerItem, arg.ID, arg.Type, arg.Amount, arg.Category, arg.Date)
	return err
}

const deleteLedgerItem = `DELETE FROM ledger_items WHERE id = ?`

func (q *Queries) DeleteLedgerItem(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteLedgerItem, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listBills = `SELECT id, name, amount, status, due_date, recurrence_rule FROM bills ORDER BY rowid`

func (q *Queries) ListBills(ctx context.Context) ([]BillRow, error) {
	rows, err := q.db.QueryContext(ctx, listBills)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BillRow
	for rows.Next() {
		var i BillRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Amount, &i.Status, &i.DueDate, &i.RecurrenceRule); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createBill = `INSERT INTO bills (id, name, amount, status, due_date, recurrence_rule) VALUES (?, ?, ?, ?, ?, ?)`

type CreateBillParams struct {
	ID             string
	Name           string
	Amount         float64
	Status         string
	DueDate        string
	RecurrenceRule string
}

func (q *Queries) CreateBill(ctx context.Context, arg CreateBillParams) error {
	_, err := q.db.ExecContext(ctx, createBill, arg.ID, arg.Name, arg.Amount, arg.Status, arg.DueDate, arg.RecurrenceRule)
	return err
}

const updateBillStatus = `UPDATE bills SET status = ? WHERE id = ?`

func (q *Queries) UpdateBillStatus(ctx context.Context, status, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateBillStatus, status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteBill = `DELETE FROM bills WHERE id = ?`

func (q *Queries) DeleteBill(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteBill, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listDebts = `SELECT id, creditor, principal, min_payment, interest_rate_apr FROM debts ORDER BY rowid`

func (q *Queries) ListDebts(ctx context.Context) ([]DebtRow, error) {
	rows, err := q.db.QueryContext(ctx, listDebts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DebtRow
	for rows.Next() {
		var i DebtRow
		if err := rows.Scan(&i.ID, &i.Creditor, &i.Principal, &i.MinPayment, &i.InterestRateApr); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createDebt = `INSERT INTO debts (id, creditor, principal, min_payment, interest_rate_apr) VALUES (?, ?, ?, ?, ?)`

type CreateDebtParams struct {
	ID              string
	Creditor        string
	Principal       float64
	MinPayment      float64
	InterestRateApr float64
}

func (q *Queries) CreateDebt(ctx context.Context, arg CreateDebtParams) error {
	_, err := q.db.ExecContext(ctx, createDebt, arg.ID, arg.Creditor, arg.Principal, arg.MinPayment, arg.InterestRateApr)
	return err
}

const deleteDebt = `DELETE FROM debts WHERE id = ?`

func (q *Queries) DeleteDebt(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteDebt, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listAssets = `SELECT id, name, value FROM assets ORDER BY rowid`

func (q *Queries) ListAssets(ctx context.Context) ([]AssetRow, error) {
	rows, err := q.db.QueryContext(ctx, listAssets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AssetRow
	for rows.Next() {
		var i AssetRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createAsset = `INSERT INTO assets (id, name, value) VALUES (?, ?, ?)`

func (q *Queries) CreateAsset(ctx context.Context, arg AssetRow) error {
	_, err := q.db.ExecContext(ctx, createAsset, arg.ID, arg.Name, arg.Value)
	return err
}

const deleteAsset = `DELETE FROM assets WHERE id = ?`

func (q *Queries) DeleteAsset(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteAsset, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listLiabilities = `SELECT id, name, amount FROM liabilities ORDER BY rowid`

func (q *Queries) ListLiabilities(ctx context.Context) ([]LiabilityRow, error) {
	rows, err := q.db.QueryContext(ctx, listLiabilities)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LiabilityRow
	for rows.Next() {
		var i LiabilityRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Amount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createLiability = `INSERT INTO liabilities (id, name, amount) VALUES (?, ?, ?)`

func (q *Queries) CreateLiability(ctx context.Context, arg LiabilityRow) error {
	_, err := q.db.ExecContext(ctx, createLiability, arg.ID, arg.Name, arg.Amount)
	return err
}

const deleteLiability = `DELETE FROM liabilities WHERE id = ?`

func (q *Queries) DeleteLiability(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteLiability, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const createPayoffPlan = `INSERT INTO payoff_plans (id, strategy, extra, input_hash, plan_json, created_at) VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreatePayoffPlan(ctx context.Context, arg PayoffPlanRow) error {
	_, err := q.db.ExecContext(ctx, createPayoffPlan, arg.ID, arg.Strategy, arg.Extra, arg.InputHash, arg.PlanJson, arg.CreatedAt)
	return err
}

const latestPayoffPlan = `SELECT id, strategy, extra, input_hash, plan_json, created_at
FROM payoff_plans WHERE strategy = ? ORDER BY rowid DESC LIMIT 1`

func (q *Queries) LatestPayoffPlan(ctx context.Context, strategy string) (PayoffPlanRow, error) {
	row := q.db.QueryRowContext(ctx, latestPayoffPlan, strategy)
	var i PayoffPlanRow
	err := row.Scan(&i.ID, &i.Strategy, &i.Extra, &i.InputHash, &i.PlanJson, &i.CreatedAt)
	return i, err
}
