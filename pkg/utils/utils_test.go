package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestErrorResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorResponse(rec, http.StatusNotFound, "no such subject")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Not Found" || body["message"] != "no such subject" {
		t.Errorf("body = %v, want error/message envelope", body)
	}
}

func TestSuccessResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessResponse(rec, http.StatusCreated, map[string]string{"id": "s1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Data["id"] != "s1" {
		t.Errorf("body = %+v, want success envelope around data", body)
	}
}

func TestWriteJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteJSON(rec, http.StatusNoContent, nil); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("nil data should write no body, got %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"title": "Math", "bogus": 1}`))

	var dst struct {
		Title string `json:"title"`
	}
	if err := ReadJSON(req, &dst); err == nil {
		t.Error("unknown field should be rejected")
	}
}
