package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxPlanMonths caps the simulation horizon a client may request.
const maxPlanMonths = 1200

// planParams are the query parameters shared by the payoff endpoints.
type planParams struct {
	extra     float64
	maxMonths int
}

func parsePlanParams(r *http.Request) (planParams, error) {
	extra, err := queryAmount(r, "extra", 0)
	if err != nil {
		return planParams{}, err
	}
	maxMonths, err := queryInt(r, "max_months", 0)
	if err != nil {
		return planParams{}, err
	}
	if maxMonths < 0 || maxMonths > maxPlanMonths {
		return planParams{}, badRequest("max_months must be between 0 and 1200")
	}
	return planParams{extra: extra, maxMonths: maxMonths}, nil
}

// idParam returns the {id} path segment.
func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}
