// Package httpx provides JSON response helpers shared by all API handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire shape of every failure response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends a structured error body.
func Error(w http.ResponseWriter, status int, message string, details ...string) {
	body := ErrorBody{Error: message}
	if len(details) > 0 {
		body.Details = details[0]
	}
	JSON(w, status, body)
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
