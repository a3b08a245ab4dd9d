package finance

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"pengeplan/internal/core"
)

// UncategorizedLabel is the bucket for ledger items without a category.
const UncategorizedLabel = "Uten kategori"

type Balance struct {
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	Balance     float64 `json:"balance"`
	SavingsRate float64 `json:"savings_rate"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type BillTotals struct {
	Planned float64 `json:"planned"`
	Paid    float64 `json:"paid"`
	Overdue float64 `json:"overdue"`
	Total   float64 `json:"total"`
}

// DebtSummary aggregates a debt list. DebtToIncomeRatio is historically
// named: it is minimum payments as a percentage of principal, and is also
// exposed as PaymentToPrincipalRatio.
type DebtSummary struct {
	Principal               float64 `json:"principal"`
	MinPayment              float64 `json:"min_payment"`
	APR                     float64 `json:"apr"`
	DebtToIncomeRatio       float64 `json:"debt_to_income_ratio"`
	PaymentToPrincipalRatio float64 `json:"payment_to_principal_ratio"`
	TotalInterest           float64 `json:"total_interest"`
}

// SumByType adds the validated amounts of every item whose type equals typ.
func SumByType(items []core.LedgerItem, typ core.LedgerType) float64 {
	var sum float64
	for _, it := range items {
		if it.Type == typ {
			sum += ValidateAmount(it.Amount)
		}
	}
	return sum
}

// MonthlyBalance summarises income against expenses. SavingsRate is a
// percentage of income and is 0 when there is no income.
func MonthlyBalance(items []core.LedgerItem) Balance {
	income := SumByType(items, core.Income)
	expense := SumByType(items, core.Expense)
	b := Balance{
		Income:  income,
		Expense: expense,
		Balance: income - expense,
	}
	if income > 0 {
		b.SavingsRate = (income - expense) / income * 100
	}
	return b
}

// CategoryTotals groups amounts by category, largest first. Equal amounts
// keep the order in which their category was first seen.
func CategoryTotals(items []core.LedgerItem) []CategoryTotal {
	out := make([]CategoryTotal, 0)
	index := make(map[string]int)
	for _, it := range items {
		key := it.Category
		if strings.TrimSpace(key) == "" {
			key = UncategorizedLabel
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, CategoryTotal{Category: key})
		}
		out[i].Amount += ValidateAmount(it.Amount)
	}
	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return cmp.Compare(b.Amount, a.Amount)
	})
	return out
}

// BillsTotals buckets bill amounts by status. Bills with a missing or
// unknown status count as planned, so Total always equals the bucket sum.
func BillsTotals(bills []core.Bill) BillTotals {
	var t BillTotals
	for _, b := range bills {
		amt := ValidateAmount(b.Amount)
		t.Total += amt
		switch b.Status {
		case core.BillPaid:
			t.Paid += amt
		case core.BillOverdue:
			t.Overdue += amt
		default:
			t.Planned += amt
		}
	}
	return t
}

// UpcomingBills returns unpaid bills due between from and from+days, both
// ends inclusive, ordered by due date. from is compared by calendar day.
// Bills without a due date are skipped.
func UpcomingBills(bills []core.Bill, from time.Time, days int) []core.Bill {
	start := core.DateOf(from).Time
	end := start.AddDate(0, 0, days)

	out := make([]core.Bill, 0)
	for _, b := range bills {
		if b.Status == core.BillPaid || b.DueDate.IsZero() {
			continue
		}
		due := b.DueDate.Midnight().Time
		if due.Before(start) || due.After(end) {
			continue
		}
		out = append(out, b)
	}
	slices.SortStableFunc(out, func(a, b core.Bill) int {
		return a.DueDate.Compare(b.DueDate.Time)
	})
	return out
}

// DebtTotals sums principal and minimum payments and computes the
// principal-weighted APR.
func DebtTotals(debts []core.Debt) DebtSummary {
	var principal, minPayment, weighted float64
	for _, d := range debts {
		p := ValidateAmount(d.Principal)
		principal += p
		minPayment += ValidateAmount(d.MinPayment)
		weighted += p * rate(d.InterestRateAPR)
	}

	s := DebtSummary{Principal: principal, MinPayment: minPayment}
	if principal > 0 {
		s.APR = weighted / principal
		s.DebtToIncomeRatio = minPayment / principal * 100
	}
	s.PaymentToPrincipalRatio = s.DebtToIncomeRatio
	s.TotalInterest = principal * (s.APR / 100)
	return s
}
