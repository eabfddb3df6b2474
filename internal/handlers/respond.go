package handlers

import (
	"encoding/json"
	"net/http"

	"keyVaultAPI/internal/models"
)

// writeJSON encodes body compactly without a trailing newline, so identical
// results produce identical bytes.
func writeJSON(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(b) //nolint:errcheck
}

// WriteError writes the error envelope with status as both the HTTP status and statusCode.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{StatusCode: status, Message: message})
}
