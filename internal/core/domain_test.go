package core

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestDateJSON(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		isZero bool
	}{
		{`"2025-03-14"`, "2025-03-14", false},
		{`"2025-03-14T10:00:00Z"`, "2025-03-14", false},
		{`""`, "", true},
		{`null`, "", true},
		{`"14.03.2025"`, "", true},
		{`"not a date"`, "", true},
	}
	for _, tc := range cases {
		var d Date
		if err := json.Unmarshal([]byte(tc.in), &d); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if d.IsZero() != tc.isZero {
			t.Fatalf("%s: IsZero=%v, want %v", tc.in, d.IsZero(), tc.isZero)
		}
		if d.String() != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.in, d.String(), tc.want)
		}
	}

	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{NewDate(2025, 1, 2)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"d":"2025-01-02"}` {
		t.Fatalf("unexpected encoding %s", b)
	}
}

func TestLedgerItemValidate(t *testing.T) {
	good := LedgerItem{Type: Income, Amount: 100, Category: "Lønn", Date: NewDate(2025, 1, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		item LedgerItem
		err  error
	}{
		{LedgerItem{Type: "transfer", Amount: 1}, ErrInvalidType},
		{LedgerItem{Type: Expense, Amount: 0}, ErrInvalidAmount},
		{LedgerItem{Type: Expense, Amount: -5}, ErrInvalidAmount},
		{LedgerItem{Type: Expense, Amount: math.NaN()}, ErrInvalidAmount},
		{LedgerItem{Type: Expense, Amount: math.Inf(1)}, ErrInvalidAmount},
		{LedgerItem{Type: Expense, Amount: 1, Category: strings.Repeat("x", 101)}, ErrCategoryTooLong},
	}
	for i, tc := range bads {
		if err := tc.item.Validate(); err != tc.err {
			t.Fatalf("case %d expected %v, got %v", i, tc.err, err)
		}
	}
}

func TestBillValidate(t *testing.T) {
	good := Bill{Name: "Strøm", Amount: 900, Status: BillPlanned, DueDate: NewDate(2025, 2, 1), RecurrenceRule: RecurMonthly}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	noStatus := good
	noStatus.Status = ""
	if err := noStatus.Validate(); err != nil {
		t.Fatalf("empty status should be accepted, got %v", err)
	}

	bads := []struct {
		mut func(*Bill)
		err error
	}{
		{func(b *Bill) { b.Amount = 0 }, ErrInvalidAmount},
		{func(b *Bill) { b.Status = "late" }, ErrInvalidStatus},
		{func(b *Bill) { b.DueDate = Date{} }, ErrMissingDueDate},
		{func(b *Bill) { b.RecurrenceRule = "daily" }, ErrInvalidRule},
		{func(b *Bill) { b.Name = strings.Repeat("n", 201) }, ErrNameTooLong},
	}
	for i, tc := range bads {
		b := good
		tc.mut(&b)
		if err := b.Validate(); err != tc.err {
			t.Fatalf("case %d expected %v, got %v", i, tc.err, err)
		}
	}
}

func TestDebtValidate(t *testing.T) {
	good := Debt{Creditor: "Bank", Principal: 1000, MinPayment: 100, InterestRateAPR: 20}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []struct {
		d   Debt
		err error
	}{
		{Debt{Creditor: " ", Principal: 1}, ErrEmptyCreditor},
		{Debt{Creditor: "x", Principal: -1}, ErrInvalidAmount},
		{Debt{Creditor: "x", MinPayment: math.NaN()}, ErrInvalidAmount},
		{Debt{Creditor: "x", InterestRateAPR: -1}, ErrInvalidRate},
		{Debt{Creditor: "x", InterestRateAPR: 1001}, ErrInvalidRate},
	}
	for i, tc := range bads {
		if err := tc.d.Validate(); err != tc.err {
			t.Fatalf("case %d expected %v, got %v", i, tc.err, err)
		}
	}
}

func TestBalanceSheetValidate(t *testing.T) {
	if err := (Asset{Name: "Bolig", Value: 3_000_000}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Asset{Name: "", Value: 1}).Validate(); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := (Liability{Name: "Lån", Amount: -1}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]struct {
		want Strategy
		ok   bool
	}{
		"snowball":   {Snowball, true},
		" Avalanche": {Avalanche, true},
		"":           {Avalanche, true},
		"hybrid":     {"", false},
	}
	for in, tc := range cases {
		got, ok := ParseStrategy(in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%q: got (%q,%v), want (%q,%v)", in, got, ok, tc.want, tc.ok)
		}
	}
}
