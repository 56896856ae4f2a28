package httpd

import (
	"net/http"

	"github.com/studytrack/studytrack-backend/internal/models"
)

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFeedbackRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, feedback)
}

func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	limit := getIntQueryParam(r, "limit", 20)

	entries, err := h.feedbackService.ListRecent(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, entries)
}
