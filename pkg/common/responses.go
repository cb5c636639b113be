package common

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// ErrorResponse is the client-facing error body. LogId is populated only for
// unexpected (500) failures, where callers are asked to quote it to support.
type ErrorResponse struct {
	Message string     `json:"message"`
	Detail  string     `json:"detail"`
	LogID   *uuid.UUID `json:"logId"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// RespondNoContent sends an empty 204 response
func RespondNoContent(w http.ResponseWriter) error {
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// RespondError sends the standard error body with the given status
func RespondError(w http.ResponseWriter, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
