package httpd

import (
	"net/http"

	"github.com/studytrack/studytrack-backend/internal/service/assist"
)

func (h *Handler) AssistTutor(w http.ResponseWriter, r *http.Request) {
	var req assist.TutorRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.assistService.Tutor(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) AssistSummarize(w http.ResponseWriter, r *http.Request) {
	var req assist.SummarizeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.assistService.Summarize(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) AssistQuiz(w http.ResponseWriter, r *http.Request) {
	var req assist.QuizRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.assistService.GenerateQuiz(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) AssistStudyPlan(w http.ResponseWriter, r *http.Request) {
	var req assist.StudyPlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.assistService.GenerateStudyPlan(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, resp)
}
