package finance

import (
	"cmp"
	"fmt"
	"slices"

	"pengeplan/internal/core"
)

// DefaultMaxMonths bounds the amortization loop when the caller passes a
// non-positive horizon.
const DefaultMaxMonths = 600

// Orderer decides the initial order of the debts in a payoff simulation.
// The pooled extra payment always goes to the first debt still in the list.
type Orderer interface {
	Compare(a, b core.Debt) int
}

// SmallestBalanceFirst implements the snowball ordering.
type SmallestBalanceFirst struct{}

func (SmallestBalanceFirst) Compare(a, b core.Debt) int {
	return cmp.Compare(a.Principal, b.Principal)
}

// HighestRateFirst implements the avalanche ordering.
type HighestRateFirst struct{}

func (HighestRateFirst) Compare(a, b core.Debt) int {
	return cmp.Compare(b.InterestRateAPR, a.InterestRateAPR)
}

// orderers maps strategies to their ordering policy.
var orderers = map[core.Strategy]Orderer{
	core.Snowball:  SmallestBalanceFirst{},
	core.Avalanche: HighestRateFirst{},
}

// GetOrderer returns the ordering policy for a strategy.
func GetOrderer(s core.Strategy) (Orderer, error) {
	o, ok := orderers[s]
	if !ok {
		return nil, fmt.Errorf("unsupported payoff strategy: %s", s)
	}
	return o, nil
}

// Strategies lists the registered strategies in a stable order.
func Strategies() []core.Strategy {
	out := make([]core.Strategy, 0, len(orderers))
	for s := range orderers {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// SnowballPlan simulates paying the smallest balance first.
func SnowballPlan(debts []core.Debt, extra float64, maxMonths int) core.PayoffPlan {
	p := simulate(debts, extra, maxMonths, SmallestBalanceFirst{})
	p.Strategy = core.Snowball
	return p
}

// AvalanchePlan simulates paying the highest interest rate first.
func AvalanchePlan(debts []core.Debt, extra float64, maxMonths int) core.PayoffPlan {
	p := simulate(debts, extra, maxMonths, HighestRateFirst{})
	p.Strategy = core.Avalanche
	return p
}

// Plan runs the simulation for a registered strategy. An unknown strategy
// falls back to avalanche.
func Plan(s core.Strategy, debts []core.Debt, extra float64, maxMonths int) core.PayoffPlan {
	o, err := GetOrderer(s)
	if err != nil {
		s, o = core.Avalanche, HighestRateFirst{}
	}
	p := simulate(debts, extra, maxMonths, o)
	p.Strategy = s
	return p
}

type workingDebt struct {
	id         string
	creditor   string
	principal  float64
	minPayment float64
	apr        float64
}

// simulate runs the month-by-month amortization. The working list is sorted
// once; retirements never reorder the survivors. A debt whose minimum
// payment does not cover its interest can run until maxMonths.
func simulate(debts []core.Debt, extra float64, maxMonths int, o Orderer) core.PayoffPlan {
	if maxMonths <= 0 {
		maxMonths = DefaultMaxMonths
	}

	normalized := make([]core.Debt, 0, len(debts))
	for _, d := range debts {
		d.Principal = ValidateAmount(d.Principal)
		d.MinPayment = ValidateAmount(d.MinPayment)
		d.InterestRateAPR = rate(d.InterestRateAPR)
		if d.Principal > 0 {
			normalized = append(normalized, d)
		}
	}
	slices.SortStableFunc(normalized, o.Compare)

	list := make([]*workingDebt, 0, len(normalized))
	for _, d := range normalized {
		list = append(list, &workingDebt{
			id:         d.ID,
			creditor:   d.Creditor,
			principal:  d.Principal,
			minPayment: d.MinPayment,
			apr:        d.InterestRateAPR,
		})
	}

	plan := core.PayoffPlan{Schedule: make([]core.PayoffScheduleEntry, 0, len(list))}
	pool := ValidateAmount(extra)
	month := 0
	var paid float64

	for len(list) > 0 && month < maxMonths {
		month++
		available := pool
		var monthTotal float64

		for _, d := range list {
			payment := d.minPayment + available
			interest := d.principal * (d.apr / 100 / 12)
			reduction := min(d.principal, payment-interest)
			d.principal = max(0, d.principal-reduction)
			monthTotal += payment
			available = 0
		}
		paid += monthTotal

		// Debts retired in the same month are recorded in priority order.
		remaining := list[:0]
		for _, d := range list {
			if d.principal > 0 {
				remaining = append(remaining, d)
				continue
			}
			pool += d.minPayment
			plan.Schedule = append(plan.Schedule, core.PayoffScheduleEntry{
				ID:           d.id,
				Creditor:     d.creditor,
				MonthPaidOff: month,
				TotalPaid:    paid,
			})
		}
		list = remaining
	}

	plan.TotalMonths = month
	plan.TotalPaid = paid
	plan.RemainingDebts = len(list)
	return plan
}

// Comparison puts both strategies side by side.
type Comparison struct {
	Snowball    core.PayoffPlan `json:"snowball"`
	Avalanche   core.PayoffPlan `json:"avalanche"`
	Recommended core.Strategy   `json:"recommended"`
	MonthsSaved int             `json:"months_saved"`
	AmountSaved float64         `json:"amount_saved"`
}

// CompareStrategies runs both simulations and recommends the cheaper one.
// A plan that leaves debts unpaid loses to one that converges; ties go to
// avalanche.
func CompareStrategies(debts []core.Debt, extra float64, maxMonths int) Comparison {
	c := Comparison{
		Snowball:  SnowballPlan(debts, extra, maxMonths),
		Avalanche: AvalanchePlan(debts, extra, maxMonths),
	}

	best, other := c.Avalanche, c.Snowball
	switch {
	case c.Snowball.RemainingDebts < c.Avalanche.RemainingDebts:
		best, other = c.Snowball, c.Avalanche
	case c.Snowball.RemainingDebts == c.Avalanche.RemainingDebts && c.Snowball.TotalPaid < c.Avalanche.TotalPaid:
		best, other = c.Snowball, c.Avalanche
	}
	c.Recommended = best.Strategy
	c.MonthsSaved = other.TotalMonths - best.TotalMonths
	c.AmountSaved = other.TotalPaid - best.TotalPaid
	return c
}
