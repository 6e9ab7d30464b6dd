package http

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler reports process liveness and the storage tiers in use.
type HealthHandler struct {
	tiers map[string]string
	log   *zap.Logger
}

// NewHealthHandler creates a health handler. tiers maps each entity family to
// the tier its hybrid adapter serves from ("postgres" or "memory").
func NewHealthHandler(tiers map[string]string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		tiers: tiers,
		log:   log,
	}
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Version      string            `json:"version"`
	StorageTiers map[string]string `json:"storage_tiers"`
	Uptime       string            `json:"uptime,omitempty"`
}

var startTime = time.Now()

// Health is the liveness endpoint. The service is always healthy while the
// process runs: losing the durable tier degrades storage to memory but never
// takes the API down, so the tier map is reported as a diagnostic only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now(),
		Version:      "1.0.0",
		StorageTiers: h.tiers,
		Uptime:       time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("failed to encode health response", zap.Error(err))
	}

	h.log.Debug("health check passed")
}

// Ready is the readiness endpoint.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"ready":         true,
		"timestamp":     time.Now(),
		"storage_tiers": h.tiers,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("failed to encode ready response", zap.Error(err))
	}
}
