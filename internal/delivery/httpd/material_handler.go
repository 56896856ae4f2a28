package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studytrack/studytrack-backend/internal/models"
)

func (h *Handler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMaterialRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	material, err := h.materialService.CreateMaterial(r.Context(), userIDFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeCreated(w, material)
}

func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	subjectID := r.URL.Query().Get("subjectId")
	if subjectID == "" {
		writeError(w, http.StatusBadRequest, "subjectId is required")
		return
	}

	materials, err := h.materialService.ListMaterials(r.Context(), userIDFromContext(r.Context()), subjectID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, materials)
}

// SearchPublicMaterials looks up shared materials by title or subject.
// Terms shorter than the configured minimum return an empty result.
func (h *Handler) SearchPublicMaterials(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	materials, err := h.materialService.SearchPublic(r.Context(), term)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, materials)
}

func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	if err := h.materialService.DeleteMaterial(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Material deleted successfully",
	})
}
