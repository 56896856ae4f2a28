package httpd

import (
	"net/http"

	"github.com/studytrack/studytrack-backend/internal/models"
)

// Avatar uploads are capped well below typical body limits; profile
// pictures do not need more.
const maxAvatarSize = 5 << 20

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.profileService.GetProfile(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userIDFromContext(r.Context()), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, user)
}

func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing avatar file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	photoURL, err := h.profileService.UploadAvatar(
		r.Context(), userIDFromContext(r.Context()),
		header.Filename, file, header.Size, contentType,
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"photoUrl": photoURL,
	})
}
