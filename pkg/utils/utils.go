package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes data as the JSON response body. A nil data value sets
// the headers and status only, for endpoints that have nothing to return.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(data)
}

// ReadJSON decodes the request body into dst, rejecting unknown fields.
func ReadJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// ErrorResponse writes the shared error envelope: the status text plus a
// human-readable message.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	_ = WriteJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

// SuccessResponse wraps data in the shared success envelope.
func SuccessResponse(w http.ResponseWriter, status int, data interface{}) {
	_ = WriteJSON(w, status, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}
