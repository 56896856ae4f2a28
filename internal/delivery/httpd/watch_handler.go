package httpd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/studytrack/studytrack-backend/internal/watch"
)

// Watch streams live snapshots of one collection over server-sent events.
// The client passes ?collection= and optionally ?filter= (a subject id for
// assignments and materials, an entry type for the timetable). The stream
// starts with the current snapshot and pushes a full replacement on every
// change until the client disconnects.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	key := watch.Key{
		Collection: r.URL.Query().Get("collection"),
		UserID:     userIDFromContext(r.Context()),
		Filter:     r.URL.Query().Get("filter"),
	}

	snapshots, err := h.hub.Subscribe(r.Context(), key)
	if err != nil {
		if errors.Is(err, watch.ErrUnknownCollection) {
			writeError(w, http.StatusBadRequest, "Unknown collection")
			return
		}
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for snapshot := range snapshots {
		payload, err := json.Marshal(snapshot)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to encode snapshot")
			continue
		}

		fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
		flusher.Flush()
	}
}
