package finance

import (
	"slices"
	"strings"

	"pengeplan/internal/core"
)

type MonthTrend struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type CategoryBudget struct {
	Category string  `json:"category"`
	Income   float64 `json:"income"`
	Expense  float64 `json:"expense"`
	Net      float64 `json:"net"`
}

// SpendingTrends totals income and expense per YYYY-MM and returns the last
// months entries in chronological order. Items without a date are skipped.
// months <= 0 returns every month.
func SpendingTrends(items []core.LedgerItem, months int) []MonthTrend {
	byMonth := make(map[string]*MonthTrend)
	for _, it := range items {
		if it.Date.IsZero() {
			continue
		}
		key := it.Date.YearMonth()
		t, ok := byMonth[key]
		if !ok {
			t = &MonthTrend{Month: key}
			byMonth[key] = t
		}
		switch it.Type {
		case core.Income:
			t.Income += ValidateAmount(it.Amount)
		case core.Expense:
			t.Expense += ValidateAmount(it.Amount)
		}
	}

	out := make([]MonthTrend, 0, len(byMonth))
	for _, t := range byMonth {
		t.Balance = t.Income - t.Expense
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b MonthTrend) int {
		return strings.Compare(a.Month, b.Month)
	})
	if months > 0 && len(out) > months {
		out = out[len(out)-months:]
	}
	return out
}

// BudgetAnalysis reports income, expense and net per category in order of
// first appearance.
func BudgetAnalysis(items []core.LedgerItem) []CategoryBudget {
	out := make([]CategoryBudget, 0)
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
			out = append(out, CategoryBudget{Category: key})
		}
		switch it.Type {
		case core.Income:
			out[i].Income += ValidateAmount(it.Amount)
		case core.Expense:
			out[i].Expense += ValidateAmount(it.Amount)
		}
	}
	for i := range out {
		out[i].Net = out[i].Income - out[i].Expense
	}
	return out
}

// TrendStats summarizes monthly expense across a trend window.
type TrendStats struct {
	Months           int     `json:"months"`
	AverageExpense   float64 `json:"average_expense"`
	MedianExpense    float64 `json:"median_expense"`
	ExpenseStdDev    float64 `json:"expense_std_dev"`
	AverageIncome    float64 `json:"average_income"`
	ExpenseChangePct float64 `json:"expense_change_pct"`
}

// SummarizeTrends computes expense statistics over trends. The change is
// measured from the first month to the last; fewer than two months gives 0.
func SummarizeTrends(trends []MonthTrend) TrendStats {
	expenses := make([]float64, len(trends))
	incomes := make([]float64, len(trends))
	for i, t := range trends {
		expenses[i] = t.Expense
		incomes[i] = t.Income
	}
	stats := TrendStats{
		Months:         len(trends),
		AverageExpense: Round2(Average(expenses)),
		MedianExpense:  Round2(Median(expenses)),
		ExpenseStdDev:  Round2(StandardDeviation(expenses)),
		AverageIncome:  Round2(Average(incomes)),
	}
	if len(trends) > 1 {
		stats.ExpenseChangePct = Round2(PercentageChange(expenses[0], expenses[len(expenses)-1]))
	}
	return stats
}
