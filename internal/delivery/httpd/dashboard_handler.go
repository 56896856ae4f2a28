package httpd

import (
	"net/http"
)

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetDashboard(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, stats)
}

// RecordVisit marks today as a study day. Repeated calls on the same day
// are no-ops.
func (h *Handler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.RecordVisit(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, stats)
}
