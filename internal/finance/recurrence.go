package finance

import (
	"slices"
	"time"

	"pengeplan/internal/core"
)

// maxOccurrences caps a single series expansion.
const maxOccurrences = 5000

var recurrenceDescriptions = map[core.RecurrenceRule]string{
	core.RecurNone:      "Engangs",
	core.RecurWeekly:    "Ukentlig",
	core.RecurMonthly:   "Månedlig",
	core.RecurQuarterly: "Kvartalsvis",
	core.RecurYearly:    "Årlig",
}

// IsValidRecurrenceRule reports whether rule is one of the named rules.
// The empty string is not a rule.
func IsValidRecurrenceRule(rule string) bool {
	_, ok := recurrenceDescriptions[core.RecurrenceRule(rule)]
	return ok
}

// RecurrenceDescription returns the Norwegian label for rule.
func RecurrenceDescription(rule string) string {
	if d, ok := recurrenceDescriptions[core.RecurrenceRule(rule)]; ok {
		return d
	}
	return "Ukjent"
}

// occurrence returns the n-th date of a series starting at start. Monthly
// steps are counted from start so a day 31 series lands on the last day of
// shorter months without drifting.
func occurrence(start core.Date, rule core.RecurrenceRule, n int) (core.Date, bool) {
	switch rule {
	case core.RecurWeekly:
		return core.Date{Time: start.AddDate(0, 0, 7*n)}, true
	case core.RecurMonthly:
		return addMonthsClamped(start, n), true
	case core.RecurQuarterly:
		return addMonthsClamped(start, 3*n), true
	case core.RecurYearly:
		return addMonthsClamped(start, 12*n), true
	}
	return core.Date{}, false
}

func addMonthsClamped(d core.Date, months int) core.Date {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return core.NewDate(first.Year(), int(first.Month()), day)
}

// NextOccurrence returns the first date of the series strictly after the
// later of start and from. ok is false for a missing start or a rule that
// does not repeat.
func NextOccurrence(start core.Date, rule core.RecurrenceRule, from time.Time) (core.Date, bool) {
	if start.IsZero() {
		return core.Date{}, false
	}
	start = start.Midnight()
	base := start.Time
	if f := core.DateOf(from).Time; f.After(base) {
		base = f
	}
	for n := 1; n <= maxOccurrences; n++ {
		d, ok := occurrence(start, rule, n)
		if !ok {
			return core.Date{}, false
		}
		if d.After(base) {
			return d, true
		}
	}
	return core.Date{}, false
}

// defaultHorizon is used when to is zero.
func defaultHorizon(from time.Time, to time.Time) time.Time {
	if to.IsZero() {
		return from.AddDate(0, 3, 0)
	}
	return to
}

// ExpandSeries lists the occurrences of a bill between from and to, both
// inclusive. A zero to means three months after from. Occurrences after the
// first one are planned regardless of the template's status. A bill with no
// rule, or a rule that does not repeat, yields at most its own due date.
func ExpandSeries(bill core.Bill, from, to time.Time) []core.Bill {
	out := make([]core.Bill, 0)
	if bill.DueDate.IsZero() || bill.RecurrenceRule == "" {
		return out
	}
	start := bill.DueDate.Midnight()
	lo := core.DateOf(from).Time
	hi := core.DateOf(defaultHorizon(from, to)).Time

	for n := 0; n < maxOccurrences; n++ {
		d := start
		if n > 0 {
			var ok bool
			if d, ok = occurrence(start, bill.RecurrenceRule, n); !ok {
				break
			}
		}
		if d.After(hi) {
			break
		}
		if d.Before(lo) {
			continue
		}
		b := bill
		b.DueDate = d
		if n > 0 {
			b.ID = ""
			b.Status = core.BillPlanned
		}
		out = append(out, b)
	}
	return out
}

// RecurringBills expands every recurring bill and adds one-off bills that
// fall inside the window, ordered by due date.
func RecurringBills(bills []core.Bill, from, to time.Time) []core.Bill {
	lo := core.DateOf(from).Time
	hi := core.DateOf(defaultHorizon(from, to)).Time

	out := make([]core.Bill, 0)
	for _, b := range bills {
		if b.RecurrenceRule.Recurring() {
			out = append(out, ExpandSeries(b, from, to)...)
			continue
		}
		if b.DueDate.IsZero() {
			continue
		}
		due := b.DueDate.Midnight().Time
		if !due.Before(lo) && !due.After(hi) {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b core.Bill) int {
		return a.DueDate.Compare(b.DueDate.Time)
	})
	return out
}

// RecurringTotal sums the validated amounts of RecurringBills.
func RecurringTotal(bills []core.Bill, from, to time.Time) float64 {
	var total float64
	for _, b := range RecurringBills(bills, from, to) {
		total += ValidateAmount(b.Amount)
	}
	return total
}
