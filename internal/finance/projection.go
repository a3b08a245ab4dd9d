package finance

import (
	"math"

	"pengeplan/internal/core"
)

type Frequency string

const (
	CompoundMonthly   Frequency = "monthly"
	CompoundQuarterly Frequency = "quarterly"
	CompoundYearly    Frequency = "yearly"
)

// PeriodsPerYear returns the compounding periods for f. Unknown values
// compound yearly.
func (f Frequency) PeriodsPerYear() float64 {
	switch f {
	case CompoundMonthly, "":
		return 12
	case CompoundQuarterly:
		return 4
	}
	return 1
}

type GrowthBreakdown struct {
	InitialInvestment  float64 `json:"initial_investment"`
	TotalContributions float64 `json:"total_contributions"`
	InterestEarned     float64 `json:"interest_earned"`
}

type CompoundResult struct {
	Principal float64         `json:"principal"`
	Interest  float64         `json:"interest"`
	Total     float64         `json:"total"`
	Breakdown GrowthBreakdown `json:"breakdown"`
}

type RetirementProjection struct {
	YearsToRetirement   float64         `json:"years_to_retirement"`
	MonthlyContribution float64         `json:"monthly_contribution"`
	ExpectedReturn      float64         `json:"expected_return"`
	ProjectedSavings    float64         `json:"projected_savings"`
	Breakdown           GrowthBreakdown `json:"breakdown"`
}

// DebtPayoffTime returns how many months a fixed monthly payment needs to
// clear debt. ok is false when the payment never covers the interest.
func DebtPayoffTime(debt core.Debt, monthlyPayment float64) (months int, ok bool) {
	principal := ValidateAmount(debt.Principal)
	payment := ValidateAmount(monthlyPayment)
	if principal == 0 {
		return 0, true
	}
	if payment == 0 {
		return 0, false
	}

	r := rate(debt.InterestRateAPR) / 100 / 12
	if r == 0 {
		return int(math.Ceil(principal / payment)), true
	}
	if payment <= principal*r {
		return 0, false
	}
	n := math.Log(payment/(payment-principal*r)) / math.Log(1+r)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return int(math.Ceil(n)), true
}

// TotalInterestPaid estimates interest over the payoff horizon, assuming
// every month is paid in full. It is 0 when the debt cannot be paid off.
func TotalInterestPaid(debt core.Debt, monthlyPayment float64) float64 {
	months, ok := DebtPayoffTime(debt, monthlyPayment)
	if !ok {
		return 0
	}
	return max(0, float64(months)*ValidateAmount(monthlyPayment)-ValidateAmount(debt.Principal))
}

// CompoundInterest projects principal plus a periodic contribution over
// years at ratePct percent a year. contribution is paid every compounding
// period.
func CompoundInterest(principal, ratePct, years, contribution float64, freq Frequency) CompoundResult {
	principal = ValidateAmount(principal)
	contribution = ValidateAmount(contribution)
	years = ValidateAmount(years)

	n := freq.PeriodsPerYear()
	periods := n * years
	r := rate(ratePct) / 100 / n

	var future float64
	if r == 0 {
		future = principal + contribution*periods
	} else {
		growth := math.Pow(1+r, periods)
		future = principal*growth + contribution*(growth-1)/r
	}

	contributed := contribution * periods
	interest := future - principal - contributed
	return CompoundResult{
		Principal: principal,
		Interest:  interest,
		Total:     future,
		Breakdown: GrowthBreakdown{
			InitialInvestment:  principal,
			TotalContributions: contributed,
			InterestEarned:     interest,
		},
	}
}

// RetirementSavings projects savings at retirement with monthly
// compounding. A retirement age at or below the current age projects
// current savings only.
func RetirementSavings(currentAge, retirementAge, currentSavings, monthlyContribution, returnPct float64) RetirementProjection {
	years := max(0, retirementAge-currentAge)
	res := CompoundInterest(currentSavings, returnPct, years, monthlyContribution, CompoundMonthly)
	return RetirementProjection{
		YearsToRetirement:   years,
		MonthlyContribution: ValidateAmount(monthlyContribution),
		ExpectedReturn:      rate(returnPct),
		ProjectedSavings:    res.Total,
		Breakdown:           res.Breakdown,
	}
}
