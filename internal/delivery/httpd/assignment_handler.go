package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studytrack/studytrack-backend/internal/models"
)

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssignmentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.assignmentSvc.CreateAssignment(r.Context(), userIDFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, assignment)
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	subjectID := r.URL.Query().Get("subjectId")

	assignments, err := h.assignmentSvc.ListAssignments(r.Context(), userIDFromContext(r.Context()), subjectID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, assignments)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAssignmentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.assignmentSvc.UpdateAssignment(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, assignment)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := h.assignmentSvc.DeleteAssignment(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Assignment deleted successfully",
	})
}
