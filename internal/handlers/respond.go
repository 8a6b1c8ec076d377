package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error body shared by all endpoints.
type ErrorResponse struct {
	// Error message
	// example: User already exists
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
