package http

import (
	"net/http"

	"pengeplan/internal/core"
	"pengeplan/internal/finance"
	"pengeplan/internal/services"
)

type billRequest struct {
	Name           string              `json:"name"`
	Amount         Amount              `json:"amount"`
	Status         core.BillStatus     `json:"status"`
	DueDate        core.Date           `json:"due_date"`
	RecurrenceRule core.RecurrenceRule `json:"recurrence_rule"`
}

type billStatusRequest struct {
	Status core.BillStatus `json:"status"`
}

// recurringResponse lists materialized occurrences in a window.
type recurringResponse struct {
	From        string      `json:"from"`
	To          string      `json:"to"`
	Occurrences []core.Bill `json:"occurrences"`
	Total       float64     `json:"total"`
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.store.ListBills(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	bill, err := s.store.AddBill(r.Context(), core.Bill{
		Name:           sanitizeInput(req.Name),
		Amount:         float64(req.Amount),
		Status:         req.Status,
		DueDate:        req.DueDate,
		RecurrenceRule: req.RecurrenceRule,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bill)
}

func (s *Server) handleSetBillStatus(w http.ResponseWriter, r *http.Request) {
	var req billStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.SetBillStatus(r.Context(), idParam(r), req.Status); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteBill(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBillTotals(w http.ResponseWriter, r *http.Request) {
	bills, err := s.store.ListBills(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.BillsTotals(bills))
}

func (s *Server) handleUpcomingBills(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from", s.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	days, err := queryInt(r, "days", services.DefaultUpcomingDays)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if days < 0 {
		writeError(w, r, badRequest("days must not be negative"))
		return
	}
	bills, err := s.store.ListBills(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.UpcomingBills(bills, from, days))
}

// handleRecurringBills expands recurring templates between from and to.
// to defaults to three months after from.
func (s *Server) handleRecurringBills(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from", s.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := queryDate(r, "to", from.AddDate(0, 3, 0))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if to.Before(from) {
		writeError(w, r, badRequest("to must not be before from"))
		return
	}
	bills, err := s.store.ListBills(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recurringResponse{
		From:        core.DateOf(from).String(),
		To:          core.DateOf(to).String(),
		Occurrences: finance.RecurringBills(bills, from, to),
		Total:       finance.RecurringTotal(bills, from, to),
	})
}
