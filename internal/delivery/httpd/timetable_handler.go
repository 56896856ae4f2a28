package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studytrack/studytrack-backend/internal/models"
)

func (h *Handler) CreateTimetableEntry(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTimetableEntryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.timetableService.CreateEntry(r.Context(), userIDFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    entry,
	})
}

func (h *Handler) ListTimetableEntries(w http.ResponseWriter, r *http.Request) {
	entryType := models.TimetableType(r.URL.Query().Get("type"))
	switch entryType {
	case models.TimetableLecture, models.TimetableWrittenExam, models.TimetablePracticalExam:
	default:
		writeError(w, http.StatusBadRequest, "type must be lecture, written_exam or practical_exam")
		return
	}

	entries, err := h.timetableService.ListEntries(r.Context(), userIDFromContext(r.Context()), entryType)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, entries)
}

func (h *Handler) UpdateTimetableEntry(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTimetableEntryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.timetableService.UpdateEntry(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, entry)
}

func (h *Handler) DeleteTimetableEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.timetableService.DeleteEntry(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Timetable entry deleted successfully",
	})
}

func (h *Handler) GetTimetableSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.timetableService.GetSettings(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, settings)
}

func (h *Handler) AddTimeSlot(w http.ResponseWriter, r *http.Request) {
	var slot models.TimeSlot
	if !h.decodeAndValidate(w, r, &slot) {
		return
	}

	settings, err := h.timetableService.AddSlot(r.Context(), userIDFromContext(r.Context()), slot)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, settings)
}

// RemoveTimeSlot deletes the slot and every lecture scheduled in it.
func (h *Handler) RemoveTimeSlot(w http.ResponseWriter, r *http.Request) {
	var slot models.TimeSlot
	if !h.decodeAndValidate(w, r, &slot) {
		return
	}

	settings, err := h.timetableService.RemoveSlot(r.Context(), userIDFromContext(r.Context()), slot)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, settings)
}
