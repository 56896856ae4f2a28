package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studytrack/studytrack-backend/internal/models"
)

func (h *Handler) SavePlanEvent(w http.ResponseWriter, r *http.Request) {
	var req models.SavePlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	event, err := h.planService.SaveEvent(r.Context(), userIDFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, event)
}

func (h *Handler) ListPlanEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.planService.ListEvents(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, events)
}

func (h *Handler) DeletePlanEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.planService.DeleteEvent(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Plan event deleted successfully",
	})
}
