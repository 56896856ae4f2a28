package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studytrack/studytrack-backend/internal/models"
)

func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubjectRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	subject, err := h.subjectService.CreateSubject(r.Context(), userIDFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, subject)
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjectService.ListSubjects(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, subjects)
}

func (h *Handler) GetSubject(w http.ResponseWriter, r *http.Request) {
	subject, err := h.subjectService.GetSubject(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, subject)
}

func (h *Handler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubjectRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	subject, err := h.subjectService.UpdateSubject(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, subject)
}

func (h *Handler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	if err := h.subjectService.DeleteSubject(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Subject and its related records deleted",
	})
}
