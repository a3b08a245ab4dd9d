package http

import (
	"net/http"

	"pengeplan/internal/core"
	"pengeplan/internal/finance"
)

type ledgerRequest struct {
	Type     core.LedgerType `json:"type"`
	Amount   Amount          `json:"amount"`
	Category string          `json:"category"`
	Date     core.Date       `json:"date"`
}

func (s *Server) handleListLedger(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListLedger(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateLedgerItem(w http.ResponseWriter, r *http.Request) {
	var req ledgerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := s.store.AddLedgerItem(r.Context(), core.LedgerItem{
		Type:     req.Type,
		Amount:   float64(req.Amount),
		Category: sanitizeInput(req.Category),
		Date:     req.Date,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleDeleteLedgerItem(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteLedgerItem(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLedgerBalance(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListLedger(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.MonthlyBalance(items))
}

func (s *Server) handleLedgerCategories(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListLedger(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.CategoryTotals(items))
}

// handleLedgerTrends returns per-month totals; months=0 means all months.
func (s *Server) handleLedgerTrends(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months", 6)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.store.ListLedger(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.SpendingTrends(items, months))
}

func (s *Server) handleLedgerTrendSummary(w http.ResponseWriter, r *http.Request) {
	months, err := queryInt(r, "months", 6)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.store.ListLedger(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.SummarizeTrends(finance.SpendingTrends(items, months)))
}

func (s *Server) handleLedgerAnalysis(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListLedger(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.BudgetAnalysis(items))
}
