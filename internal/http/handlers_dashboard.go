package http

import "net/http"

// handleDashboard returns the front page summary. days=0 means the default
// upcoming-bill window.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from", s.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	days, err := queryInt(r, "days", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.planner.Dashboard(r.Context(), from, days)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
