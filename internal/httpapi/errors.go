package httpapi

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the standard error payload for the API. Every user-visible
// failure carries a detail field.
type errorResponse struct {
	Detail string `json:"detail"`
}

// fieldError describes one offending field of a validation failure.
type fieldError struct {
	Field   string          `json:"field"`
	Message string          `json:"message"`
	Input   json.RawMessage `json:"input,omitempty"`
}

// validationResponse enumerates every offending field in one response.
type validationResponse struct {
	Detail []fieldError `json:"detail"`
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	toJSON(w, status, errorResponse{Detail: msg})
}

func badRequest(w http.ResponseWriter, msg string) { writeDetail(w, http.StatusBadRequest, msg) }
func entryNotFound(w http.ResponseWriter)          { writeDetail(w, http.StatusNotFound, "Entry not found") }
func internalError(w http.ResponseWriter, msg string) {
	writeDetail(w, http.StatusInternalServerError, msg)
}
