package handlers

import (
	"encoding/json"
	"net/http"
)

// respondWithJSON writes a JSON body with the given status.
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondWithError writes a JSON error body carrying a stable
// machine-readable code alongside the human-readable message.
func respondWithError(w http.ResponseWriter, statusCode int, code, message string) {
	respondWithJSON(w, statusCode, map[string]string{"error": message, "code": code})
}
