package utils

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}

// WriteJSON writes a success payload. Handlers build payloads that already
// carry "ok": true.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode JSON response", http.StatusInternalServerError)
	}
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{
		Ok:    false,
		Error: message,
	})
}
