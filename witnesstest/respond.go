package witnesstest

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ErrorBody mirrors the error envelope returned by the Witness API.
type ErrorBody struct {
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Issues  []IssueEntry `json:"issues,omitempty"`
}

// IssueEntry is one validation issue inside ErrorBody.
type IssueEntry struct {
	Code    string   `json:"code,omitempty"`
	Path    []string `json:"path,omitempty"`
	Message string   `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("witnesstest: failed to encode JSON response")
	}
}

// WriteError writes an ErrorBody with the given status code.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, issues ...IssueEntry) {
	WriteJSON(w, statusCode, ErrorBody{Message: message, Code: code, Issues: issues})
}

func writeNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "NOT_FOUND", message)
}

// writeValidation reports missing or malformed inputs the way the API's
// schema validation does.
func writeValidation(w http.ResponseWriter, issues ...IssueEntry) {
	WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Input validation failed", issues...)
}

func required(field string) IssueEntry {
	return IssueEntry{Code: "invalid_type", Path: []string{field}, Message: "Required"}
}

func invalid(field, message string) IssueEntry {
	return IssueEntry{Code: "custom", Path: []string{field}, Message: message}
}
