package http

import (
	"errors"
	"fmt"
	"net/http"

	"pengeplan/internal/core"
	"pengeplan/internal/finance"
)

type debtRequest struct {
	Creditor        string  `json:"creditor"`
	Principal       Amount  `json:"principal"`
	MinPayment      Amount  `json:"min_payment"`
	InterestRateAPR float64 `json:"interest_rate_apr"`
}

type debtPayoffResponse struct {
	DebtID        string  `json:"debt_id"`
	Payment       float64 `json:"payment"`
	Months        int     `json:"months"`
	Payable       bool    `json:"payable"`
	TotalInterest float64 `json:"total_interest"`
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.store.ListDebts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, debts)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	debt, err := s.store.AddDebt(r.Context(), core.Debt{
		Creditor:        sanitizeInput(req.Creditor),
		Principal:       float64(req.Principal),
		MinPayment:      float64(req.MinPayment),
		InterestRateAPR: req.InterestRateAPR,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, debt)
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteDebt(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDebtTotals(w http.ResponseWriter, r *http.Request) {
	debts, err := s.store.ListDebts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.DebtTotals(debts))
}

// handleDebtPayoff answers how long one debt takes at a fixed payment.
// payment defaults to the debt's minimum.
func (s *Server) handleDebtPayoff(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	debts, err := s.store.ListDebts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var debt *core.Debt
	for i := range debts {
		if debts[i].ID == id {
			debt = &debts[i]
			break
		}
	}
	if debt == nil {
		writeError(w, r, fmt.Errorf("debt %s: %w", id, core.ErrNotFound))
		return
	}

	payment, err := queryAmount(r, "payment", debt.MinPayment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	months, ok := finance.DebtPayoffTime(*debt, payment)
	writeJSON(w, http.StatusOK, debtPayoffResponse{
		DebtID:        debt.ID,
		Payment:       payment,
		Months:        months,
		Payable:       ok,
		TotalInterest: finance.TotalInterestPaid(*debt, payment),
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	strategy, err := queryStrategy(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := parsePlanParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	plan, err := s.planner.Plan(r.Context(), strategy, p.extra, p.maxMonths)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	p, err := parsePlanParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.planner.Compare(r.Context(), p.extra, p.maxMonths)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleSavedPlan returns the newest plan the plan worker stored.
func (s *Server) handleSavedPlan(w http.ResponseWriter, r *http.Request) {
	strategy, err := queryStrategy(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := s.store.LatestPlan(r.Context(), strategy)
	if errors.Is(err, core.ErrNotFound) {
		ErrorResponse(http.StatusNotFound, fmt.Sprintf("no saved %s plan yet", strategy)).Write(w)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
