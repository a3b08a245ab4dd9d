package finance

type TaxEstimate struct {
	GrossIncome   float64 `json:"gross_income"`
	Deductions    float64 `json:"deductions"`
	TaxableIncome float64 `json:"taxable_income"`
	Tax           float64 `json:"tax"`
	EffectiveRate float64 `json:"effective_rate"`
	NetIncome     float64 `json:"net_income"`
}

// NorwegianTaxEstimate applies progressive brackets to income minus
// deductions. Taxable income never goes below zero.
func NorwegianTaxEstimate(annualIncome, deductions float64, brackets TaxBrackets) TaxEstimate {
	income := ValidateAmount(annualIncome)
	deductions = ValidateAmount(deductions)
	taxable := max(0, income-deductions)

	var tax, lower float64
	for _, b := range brackets.Brackets {
		if taxable <= lower {
			break
		}
		upper := b.UpTo
		if upper == 0 || taxable < upper {
			upper = taxable
		}
		tax += (upper - lower) * b.Rate / 100
		lower = upper
	}

	est := TaxEstimate{
		GrossIncome:   income,
		Deductions:    deductions,
		TaxableIncome: taxable,
		Tax:           tax,
		NetIncome:     income - tax,
	}
	if income > 0 {
		est.EffectiveRate = tax / income * 100
	}
	return est
}
