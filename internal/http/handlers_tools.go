package http

import (
	"net/http"

	"pengeplan/internal/finance"
)

// Calculator endpoints. They read only query parameters and never touch
// the store.

func (s *Server) handleEmergencyFund(w http.ResponseWriter, r *http.Request) {
	expenses, err := queryAmount(r, "monthly_expenses", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	fund, err := queryAmount(r, "fund", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	target, err := queryFloat(r, "target_months", finance.DefaultTargetMonths)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.EmergencyFundAnalysis(expenses, fund, target))
}

func (s *Server) handleCompound(w http.ResponseWriter, r *http.Request) {
	var (
		principal, rate, years, contribution float64
		err                                  error
	)
	if principal, err = queryAmount(r, "principal", 0); err != nil {
		writeError(w, r, err)
		return
	}
	if rate, err = queryFloat(r, "rate", 0); err != nil {
		writeError(w, r, err)
		return
	}
	if years, err = queryFloat(r, "years", 0); err != nil {
		writeError(w, r, err)
		return
	}
	if contribution, err = queryAmount(r, "contribution", 0); err != nil {
		writeError(w, r, err)
		return
	}
	freq := finance.Frequency(r.URL.Query().Get("frequency"))
	writeJSON(w, http.StatusOK, finance.CompoundInterest(principal, rate, years, contribution, freq))
}

func (s *Server) handleRetirement(w http.ResponseWriter, r *http.Request) {
	var (
		age, retireAt, savings, contribution, ret float64
		err                                       error
	)
	if age, err = queryFloat(r, "current_age", 0); err != nil {
		writeError(w, r, err)
		return
	}
	if retireAt, err = queryFloat(r, "retirement_age", 67); err != nil {
		writeError(w, r, err)
		return
	}
	if savings, err = queryAmount(r, "current_savings", 0); err != nil {
		writeError(w, r, err)
		return
	}
	if contribution, err = queryAmount(r, "monthly_contribution", 0); err != nil {
		writeError(w, r, err)
		return
	}
	if ret, err = queryFloat(r, "return", 5); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.RetirementSavings(age, retireAt, savings, contribution, ret))
}

func (s *Server) handleTaxEstimate(w http.ResponseWriter, r *http.Request) {
	income, err := queryAmount(r, "income", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	deductions, err := queryAmount(r, "deductions", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.NorwegianTaxEstimate(income, deductions, s.rules.Tax))
}

func (s *Server) handleSupportEligibility(w http.ResponseWriter, r *http.Request) {
	income, err := queryAmount(r, "income", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	expenses, err := queryAmount(r, "expenses", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	size, err := queryInt(r, "family_size", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.SupportProgramEligibility(income, expenses, size, s.rules.Support))
}
