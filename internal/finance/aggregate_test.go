package finance

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"pengeplan/internal/core"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{12.5, 12.5},
		{-1, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}
	for _, tc := range cases {
		if got := ValidateAmount(tc.in); got != tc.want {
			t.Errorf("ValidateAmount(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCoerceAmount(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 10.5, 10.5},
		{"negative float", -3.0, 0},
		{"int", 42, 42},
		{"uint8", uint8(7), 7},
		{"json number", json.Number("99.9"), 99.9},
		{"bad json number", json.Number("x"), 0},
		{"string comma", "1 234,50", 1234.5},
		{"string negative", "-5", 0},
		{"string garbage", "abc", 0},
		{"bool", true, 0},
		{"slice", []int{1}, 0},
		{"map", map[string]any{"a": 1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CoerceAmount(tc.in)
			if got != tc.want {
				t.Fatalf("CoerceAmount(%v) = %v, want %v", tc.in, got, tc.want)
			}
			if got < 0 {
				t.Fatalf("negative result %v", got)
			}
		})
	}
}

func TestSumByType(t *testing.T) {
	items := []core.LedgerItem{
		{Type: core.Income, Amount: 100},
		{Type: core.Income, Amount: math.NaN()},
		{Type: core.Expense, Amount: 40},
		{Type: core.Expense, Amount: -10},
		{Type: "transfer", Amount: 1000},
	}
	if got := SumByType(items, core.Income); got != 100 {
		t.Errorf("income = %v, want 100", got)
	}
	if got := SumByType(items, core.Expense); got != 40 {
		t.Errorf("expense = %v, want 40", got)
	}
	if got := SumByType(items, "unknown"); got != 0 {
		t.Errorf("unknown = %v, want 0", got)
	}
	if got := SumByType(nil, core.Income); got != 0 {
		t.Errorf("nil items = %v, want 0", got)
	}
}

func TestMonthlyBalance(t *testing.T) {
	t.Run("zero income", func(t *testing.T) {
		got := MonthlyBalance([]core.LedgerItem{{Type: core.Expense, Amount: 400}})
		want := Balance{Income: 0, Expense: 400, Balance: -400, SavingsRate: 0}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})

	t.Run("savings rate", func(t *testing.T) {
		got := MonthlyBalance([]core.LedgerItem{
			{Type: core.Income, Amount: 50000},
			{Type: core.Expense, Amount: 30000},
			{Type: core.Expense, Amount: 10000},
		})
		if got.Balance != got.Income-got.Expense {
			t.Fatalf("balance identity broken: %+v", got)
		}
		if !almostEqual(got.SavingsRate, 20) {
			t.Fatalf("savings rate = %v, want 20", got.SavingsRate)
		}
	})

	t.Run("overspending gives negative rate", func(t *testing.T) {
		got := MonthlyBalance([]core.LedgerItem{
			{Type: core.Income, Amount: 100},
			{Type: core.Expense, Amount: 150},
		})
		if !almostEqual(got.SavingsRate, -50) {
			t.Fatalf("savings rate = %v, want -50", got.SavingsRate)
		}
	})

	t.Run("repeatable", func(t *testing.T) {
		items := []core.LedgerItem{{Type: core.Income, Amount: 0.1}, {Type: core.Expense, Amount: 0.2}}
		if MonthlyBalance(items) != MonthlyBalance(items) {
			t.Fatal("results differ between calls")
		}
	})
}

func TestCategoryTotals(t *testing.T) {
	items := []core.LedgerItem{
		{Type: core.Expense, Amount: 100, Category: "Mat"},
		{Type: core.Expense, Amount: 300, Category: "Bolig"},
		{Type: core.Expense, Amount: 50},
		{Type: core.Expense, Amount: 50, Category: "  "},
		{Type: core.Expense, Amount: 200, Category: "Mat"},
		{Type: core.Expense, Amount: 100, Category: "Transport"},
	}
	got := CategoryTotals(items)
	want := []CategoryTotal{
		{Category: "Mat", Amount: 300},
		{Category: "Bolig", Amount: 300},
		{Category: UncategorizedLabel, Amount: 100},
		{Category: "Transport", Amount: 100},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	if out := CategoryTotals(nil); out == nil || len(out) != 0 {
		t.Errorf("empty input should give empty slice, got %#v", out)
	}
}

func TestBillsTotals(t *testing.T) {
	bills := []core.Bill{
		{Amount: 100, Status: core.BillPlanned},
		{Amount: 200, Status: core.BillPaid},
		{Amount: 300, Status: core.BillOverdue},
		{Amount: 400, Status: "pending"},
		{Amount: 500},
		{Amount: -50, Status: core.BillPaid},
	}
	got := BillsTotals(bills)
	want := BillTotals{Planned: 1000, Paid: 200, Overdue: 300, Total: 1500}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if got.Total != got.Planned+got.Paid+got.Overdue {
		t.Fatalf("total %v does not equal bucket sum", got.Total)
	}
}

func TestUpcomingBills(t *testing.T) {
	bills := []core.Bill{
		{ID: "a", Amount: 1, Status: core.BillPlanned, DueDate: core.NewDate(2024, 1, 20)},
		{ID: "b", Amount: 1, Status: core.BillPaid, DueDate: core.NewDate(2024, 1, 18)},
		{ID: "c", Amount: 1, Status: core.BillPlanned, DueDate: core.NewDate(2024, 1, 25)},
		{ID: "d", Amount: 1, Status: core.BillPlanned, DueDate: core.NewDate(2024, 1, 10)},
	}
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	got := UpcomingBills(bills, from, 7)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only bill a, got %+v", got)
	}

	t.Run("inclusive bounds and ordering", func(t *testing.T) {
		edge := []core.Bill{
			{ID: "end", Status: core.BillOverdue, DueDate: core.NewDate(2024, 1, 22)},
			{ID: "start", Status: core.BillPlanned, DueDate: core.NewDate(2024, 1, 15)},
			{ID: "nodate", Status: core.BillPlanned},
			{ID: "mid", Status: "weird", DueDate: core.NewDate(2024, 1, 18)},
		}
		got := UpcomingBills(edge, from.Add(9*time.Hour), 7)
		ids := make([]string, 0, len(got))
		for _, b := range got {
			ids = append(ids, b.ID)
		}
		want := []string{"start", "mid", "end"}
		if len(ids) != len(want) {
			t.Fatalf("got %v, want %v", ids, want)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("got %v, want %v", ids, want)
			}
		}
	})
}

func TestDebtTotals(t *testing.T) {
	t.Run("weighted apr", func(t *testing.T) {
		got := DebtTotals([]core.Debt{
			{Principal: 1000, MinPayment: 100, InterestRateAPR: 0.2},
			{Principal: 1000, MinPayment: 50, InterestRateAPR: 0.1},
		})
		if !almostEqual(got.APR, 0.15) {
			t.Errorf("apr = %v, want 0.15", got.APR)
		}
		if !almostEqual(got.DebtToIncomeRatio, 7.5) {
			t.Errorf("ratio = %v, want 7.5", got.DebtToIncomeRatio)
		}
		if got.PaymentToPrincipalRatio != got.DebtToIncomeRatio {
			t.Errorf("alias differs: %v vs %v", got.PaymentToPrincipalRatio, got.DebtToIncomeRatio)
		}
		if got.Principal != 2000 || got.MinPayment != 150 {
			t.Errorf("sums wrong: %+v", got)
		}
		if !almostEqual(got.TotalInterest, 3) {
			t.Errorf("total interest = %v, want 3", got.TotalInterest)
		}
	})

	t.Run("principal weighting", func(t *testing.T) {
		got := DebtTotals([]core.Debt{
			{Principal: 3000, InterestRateAPR: 10},
			{Principal: 1000, InterestRateAPR: 20},
		})
		if !almostEqual(got.APR, 12.5) {
			t.Errorf("apr = %v, want 12.5", got.APR)
		}
	})

	t.Run("no principal", func(t *testing.T) {
		got := DebtTotals([]core.Debt{{Principal: 0, MinPayment: 100, InterestRateAPR: 20}})
		if got.APR != 0 || got.DebtToIncomeRatio != 0 || got.TotalInterest != 0 {
			t.Errorf("expected zero ratios, got %+v", got)
		}
	})
}

func TestSpendingTrends(t *testing.T) {
	items := []core.LedgerItem{
		{Type: core.Income, Amount: 1000, Date: core.NewDate(2025, 1, 5)},
		{Type: core.Expense, Amount: 400, Date: core.NewDate(2025, 3, 2)},
		{Type: core.Income, Amount: 900, Date: core.NewDate(2025, 3, 25)},
		{Type: core.Expense, Amount: 200, Date: core.NewDate(2025, 2, 14)},
		{Type: core.Expense, Amount: 999},
	}
	got := SpendingTrends(items, 2)
	want := []MonthTrend{
		{Month: "2025-02", Expense: 200, Balance: -200},
		{Month: "2025-03", Income: 900, Expense: 400, Balance: 500},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	if all := SpendingTrends(items, 0); len(all) != 3 {
		t.Errorf("months=0 should return every month, got %d", len(all))
	}
}

func TestBudgetAnalysis(t *testing.T) {
	got := BudgetAnalysis([]core.LedgerItem{
		{Type: core.Income, Amount: 500, Category: "Salg"},
		{Type: core.Expense, Amount: 200, Category: "Salg"},
		{Type: core.Expense, Amount: 80},
	})
	want := []CategoryBudget{
		{Category: "Salg", Income: 500, Expense: 200, Net: 300},
		{Category: UncategorizedLabel, Expense: 80, Net: -80},
	}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestStatistics(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Average(values); got != 5 {
		t.Errorf("Average = %v, want 5", got)
	}
	if got := Median(values); got != 4.5 {
		t.Errorf("Median = %v, want 4.5", got)
	}
	if got := Median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("odd Median = %v, want 2", got)
	}
	if got := StandardDeviation(values); got != 2 {
		t.Errorf("StandardDeviation = %v, want 2", got)
	}
	if values[0] != 2 || values[7] != 9 {
		t.Error("Median must not reorder its input")
	}
	for name, got := range map[string]float64{
		"average": Average(nil),
		"median":  Median(nil),
		"stddev":  StandardDeviation(nil),
	} {
		if got != 0 {
			t.Errorf("%s of empty input = %v, want 0", name, got)
		}
	}

	changes := []struct {
		before, after, want float64
	}{
		{100, 150, 50},
		{200, 100, -50},
		{0, 10, 100},
		{0, 0, 0},
	}
	for _, tc := range changes {
		if got := PercentageChange(tc.before, tc.after); got != tc.want {
			t.Errorf("PercentageChange(%v, %v) = %v, want %v", tc.before, tc.after, got, tc.want)
		}
	}
}

func TestSummarizeTrends(t *testing.T) {
	got := SummarizeTrends([]MonthTrend{
		{Month: "2025-01", Income: 1000, Expense: 400},
		{Month: "2025-02", Income: 1000, Expense: 600},
		{Month: "2025-03", Income: 700, Expense: 500},
	})
	want := TrendStats{
		Months:           3,
		AverageExpense:   500,
		MedianExpense:    500,
		ExpenseStdDev:    81.65,
		AverageIncome:    900,
		ExpenseChangePct: 25,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	single := SummarizeTrends([]MonthTrend{{Month: "2025-01", Expense: 300}})
	if single.ExpenseChangePct != 0 || single.AverageExpense != 300 {
		t.Errorf("single month: %+v", single)
	}
	if empty := SummarizeTrends(nil); empty != (TrendStats{}) {
		t.Errorf("empty: %+v", empty)
	}
}
