package finance

import (
	"testing"
	"time"

	"pengeplan/internal/core"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name  string
		start core.Date
		rule  core.RecurrenceRule
		from  time.Time
		want  string
		ok    bool
	}{
		{"weekly from start", core.NewDate(2025, 1, 1), core.RecurWeekly, day(2025, 1, 1), "2025-01-08", true},
		{"weekly catches up", core.NewDate(2025, 1, 1), core.RecurWeekly, day(2025, 1, 10), "2025-01-15", true},
		{"monthly clamps to month end", core.NewDate(2025, 1, 31), core.RecurMonthly, day(2025, 1, 31), "2025-02-28", true},
		{"monthly keeps day after short month", core.NewDate(2025, 1, 31), core.RecurMonthly, day(2025, 2, 28), "2025-03-31", true},
		{"quarterly", core.NewDate(2025, 1, 15), core.RecurQuarterly, day(2025, 1, 20), "2025-04-15", true},
		{"yearly leap day", core.NewDate(2024, 2, 29), core.RecurYearly, day(2024, 3, 1), "2025-02-28", true},
		{"from before start", core.NewDate(2025, 6, 1), core.RecurMonthly, day(2025, 1, 1), "2025-07-01", true},
		{"none", core.NewDate(2025, 1, 1), core.RecurNone, day(2025, 1, 1), "", false},
		{"unknown", core.NewDate(2025, 1, 1), "daily", day(2025, 1, 1), "", false},
		{"no start", core.Date{}, core.RecurMonthly, day(2025, 1, 1), "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextOccurrence(tc.start, tc.rule, tc.from)
			if ok != tc.ok || got.String() != tc.want {
				t.Fatalf("got (%s,%v), want (%s,%v)", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestExpandSeries(t *testing.T) {
	bill := core.Bill{
		ID:             "rent",
		Name:           "Husleie",
		Amount:         12000,
		Status:         core.BillPaid,
		DueDate:        core.NewDate(2025, 1, 15),
		RecurrenceRule: core.RecurMonthly,
	}
	got := ExpandSeries(bill, day(2025, 1, 1), day(2025, 4, 30))
	want := []string{"2025-01-15", "2025-02-15", "2025-03-15", "2025-04-15"}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d", len(got), len(want))
	}
	for i, b := range got {
		if b.DueDate.String() != want[i] {
			t.Errorf("occurrence %d: %s, want %s", i, b.DueDate, want[i])
		}
		if b.Name != "Husleie" || b.Amount != 12000 {
			t.Errorf("occurrence %d lost template fields: %+v", i, b)
		}
	}
	if got[0].ID != "rent" || got[0].Status != core.BillPaid {
		t.Errorf("first occurrence should be the template itself: %+v", got[0])
	}
	if got[1].ID != "" || got[1].Status != core.BillPlanned {
		t.Errorf("later occurrences should be new planned bills: %+v", got[1])
	}

	t.Run("window after start", func(t *testing.T) {
		got := ExpandSeries(bill, day(2025, 3, 1), day(2025, 3, 31))
		if len(got) != 1 || got[0].DueDate.String() != "2025-03-15" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("default horizon", func(t *testing.T) {
		got := ExpandSeries(bill, day(2025, 1, 1), time.Time{})
		if len(got) != 3 {
			t.Fatalf("expected three occurrences in three months, got %d", len(got))
		}
	})

	t.Run("no rule", func(t *testing.T) {
		b := bill
		b.RecurrenceRule = ""
		if got := ExpandSeries(b, day(2025, 1, 1), day(2025, 12, 31)); len(got) != 0 {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("unknown rule stops after first", func(t *testing.T) {
		b := bill
		b.RecurrenceRule = "daily"
		if got := ExpandSeries(b, day(2025, 1, 1), day(2025, 12, 31)); len(got) != 1 {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestRecurringBillsAndTotal(t *testing.T) {
	bills := []core.Bill{
		{ID: "strom", Amount: 900, DueDate: core.NewDate(2025, 1, 20), RecurrenceRule: core.RecurMonthly},
		{ID: "forsikring", Amount: 3000, DueDate: core.NewDate(2025, 2, 1), RecurrenceRule: core.RecurNone},
		{ID: "gammel", Amount: 500, DueDate: core.NewDate(2024, 12, 1)},
		{ID: "udatert", Amount: 100},
	}
	got := RecurringBills(bills, day(2025, 1, 1), day(2025, 2, 28))
	ids := []string{}
	for _, b := range got {
		ids = append(ids, b.ID+"@"+b.DueDate.String())
	}
	want := []string{"strom@2025-01-20", "forsikring@2025-02-01", "@2025-02-20"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}

	if total := RecurringTotal(bills, day(2025, 1, 1), day(2025, 2, 28)); total != 4800 {
		t.Fatalf("total = %v, want 4800", total)
	}
}

func TestRecurrenceDescriptions(t *testing.T) {
	cases := map[string]string{
		"none":      "Engangs",
		"weekly":    "Ukentlig",
		"monthly":   "Månedlig",
		"quarterly": "Kvartalsvis",
		"yearly":    "Årlig",
		"daily":     "Ukjent",
		"":          "Ukjent",
	}
	for rule, want := range cases {
		if got := RecurrenceDescription(rule); got != want {
			t.Errorf("%q: got %q, want %q", rule, got, want)
		}
		if valid := IsValidRecurrenceRule(rule); valid != (want != "Ukjent") {
			t.Errorf("%q: valid = %v", rule, valid)
		}
	}
}
