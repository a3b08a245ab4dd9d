package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"pengeplan/internal/core"
)

// DefaultTargetMonths is the emergency fund coverage goal used when the
// caller does not supply one.
const DefaultTargetMonths = 6

type FundStatus string

const (
	FundAdequate   FundStatus = "adequate"
	FundPartial    FundStatus = "partial"
	FundInadequate FundStatus = "inadequate"
)

type NetWorth struct {
	Assets           float64 `json:"assets"`
	Liabilities      float64 `json:"liabilities"`
	NetWorth         float64 `json:"net_worth"`
	DebtToAssetRatio float64 `json:"debt_to_asset_ratio"`
}

type EmergencyFund struct {
	Target        float64    `json:"target"`
	Current       float64    `json:"current"`
	Shortfall     float64    `json:"shortfall"`
	Adequacy      float64    `json:"adequacy"`
	MonthsCovered float64    `json:"months_covered"`
	Status        FundStatus `json:"status"`
}

// CalculateNetWorth subtracts total liabilities from total assets.
// DebtToAssetRatio is a percentage rounded to two decimals.
func CalculateNetWorth(assets []core.Asset, liabilities []core.Liability) NetWorth {
	var a, l float64
	for _, x := range assets {
		a += ValidateAmount(x.Value)
	}
	for _, x := range liabilities {
		l += ValidateAmount(x.Amount)
	}
	nw := NetWorth{Assets: a, Liabilities: l, NetWorth: a - l}
	if a > 0 {
		nw.DebtToAssetRatio = Round2(l / a * 100)
	}
	return nw
}

// EmergencyFundAnalysis measures a buffer against monthlyExpenses times
// targetMonths. A zero target counts as fully covered; invalid targetMonths
// are treated as 0.
func EmergencyFundAnalysis(monthlyExpenses, emergencyFund, targetMonths float64) EmergencyFund {
	monthlyExpenses = ValidateAmount(monthlyExpenses)
	targetMonths = ValidateAmount(targetMonths)

	f := EmergencyFund{
		Target:  monthlyExpenses * targetMonths,
		Current: ValidateAmount(emergencyFund),
	}
	f.Shortfall = max(0, f.Target-f.Current)
	f.Adequacy = 100
	if f.Target > 0 {
		f.Adequacy = f.Current / f.Target * 100
	}
	if monthlyExpenses > 0 {
		f.MonthsCovered = f.Current / monthlyExpenses
	}

	switch {
	case f.Adequacy >= 100:
		f.Status = FundAdequate
	case f.Adequacy >= 50:
		f.Status = FundPartial
	default:
		f.Status = FundInadequate
	}
	return f
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
