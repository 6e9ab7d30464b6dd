package http

import (
	"Pulse-Backend/internal/repository"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// writeJSON writes a JSON response body with the given status code.
func writeJSON(w http.ResponseWriter, log *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, log *zap.Logger, message string, status int) {
	writeJSON(w, log, status, map[string]string{"error": message})
}

// writeDomainError maps storage sentinel errors to HTTP statuses. Anything
// that is not a domain outcome is a true server-side failure: by this point
// both storage tiers have been exhausted.
func writeDomainError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidRecord):
		writeError(w, log, "invalid record", http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, log, "not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrMetadataExists):
		writeError(w, log, "already exists", http.StatusConflict)
	default:
		log.Error("request failed", zap.Error(err))
		writeError(w, log, "internal server error", http.StatusInternalServerError)
	}
}
