package handlers

import (
	"net/http"
	"time"
)

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler reports process liveness. The checker is stateless, so a
// responding process is a healthy one.
type HealthHandler struct {
	Version string
}

// Handle responds with the current health status.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
