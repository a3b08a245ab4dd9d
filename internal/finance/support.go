package finance

import "math"

type SupportProgram struct {
	Name            string  `json:"name"`
	Eligibility     string  `json:"eligibility"`
	EstimatedAmount float64 `json:"estimated_amount"`
}

type SupportEligibility struct {
	DisposableIncome      float64          `json:"disposable_income"`
	PerPersonIncome       float64          `json:"per_person_income"`
	FamilySize            int              `json:"family_size"`
	EligiblePrograms      []SupportProgram `json:"eligible_programs"`
	TotalEstimatedSupport float64          `json:"total_estimated_support"`
}

const (
	LikelyEligible = "Sannsynlig berettiget"
	MaybeEligible  = "Mulig berettiget"
)

// SupportProgramEligibility is a rough screen for public support schemes.
// familySize below one is treated as one.
func SupportProgramEligibility(income, expenses float64, familySize int, rules SupportRules) SupportEligibility {
	if familySize < 1 {
		familySize = 1
	}
	disposable := ValidateAmount(income) - ValidateAmount(expenses)
	perPerson := disposable / float64(familySize)

	programs := make([]SupportProgram, 0, 3)
	if hb := rules.HousingBenefit; perPerson < hb.PerPersonLimit {
		programs = append(programs, SupportProgram{
			Name:            hb.Name,
			Eligibility:     LikelyEligible,
			EstimatedAmount: max(0, (hb.PerPersonLimit-perPerson)*hb.Rate),
		})
	}
	if cb := rules.ChildBenefit; familySize > 1 && perPerson < cb.PerPersonLimit {
		programs = append(programs, SupportProgram{
			Name:            cb.Name,
			Eligibility:     LikelyEligible,
			EstimatedAmount: cb.MonthlyPerMember * float64(familySize),
		})
	}
	if disposable < 0 {
		programs = append(programs, SupportProgram{
			Name:            rules.SocialAssistance.Name,
			Eligibility:     MaybeEligible,
			EstimatedAmount: math.Abs(disposable) * rules.SocialAssistance.Rate,
		})
	}

	out := SupportEligibility{
		DisposableIncome: disposable,
		PerPersonIncome:  perPerson,
		FamilySize:       familySize,
		EligiblePrograms: programs,
	}
	for _, p := range programs {
		out.TotalEstimatedSupport += p.EstimatedAmount
	}
	return out
}
