package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"pengeplan/internal/core"
	"pengeplan/internal/finance"
)

type assetRequest struct {
	Name  string `json:"name"`
	Value Amount `json:"value"`
}

type liabilityRequest struct {
	Name   string `json:"name"`
	Amount Amount `json:"amount"`
}

func (s *Server) handleNetWorth(w http.ResponseWriter, r *http.Request) {
	var (
		assets      []core.Asset
		liabilities []core.Liability
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		assets, err = s.store.ListAssets(ctx)
		return err
	})
	g.Go(func() (err error) {
		liabilities, err = s.store.ListLiabilities(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, finance.CalculateNetWorth(assets, liabilities))
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.store.ListAssets(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := s.store.AddAsset(r.Context(), core.Asset{Name: sanitizeInput(req.Name), Value: float64(req.Value)})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAsset(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLiabilities(w http.ResponseWriter, r *http.Request) {
	liabilities, err := s.store.ListLiabilities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, liabilities)
}

func (s *Server) handleCreateLiability(w http.ResponseWriter, r *http.Request) {
	var req liabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	l, err := s.store.AddLiability(r.Context(), core.Liability{Name: sanitizeInput(req.Name), Amount: float64(req.Amount)})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleDeleteLiability(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteLiability(r.Context(), idParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
