package handler

import (
	"fmt"
	"net/http"
)

// timestampLayout matches ISO-8601 with millisecond precision, e.g. 2024-05-01T12:00:00.000Z
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HealthResponse represents the health check response
type HealthResponse struct {
	Uptime    float64 `json:"uptime"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
}

// Health handles GET /api/health
// Reports process uptime only; the mail provider is not probed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().Interface("error", rec).Msg("health check failed")
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"message": "Health check failed",
				"error":   fmt.Sprint(rec),
			})
		}
	}()

	now := h.now()

	writeJSON(w, http.StatusOK, HealthResponse{
		Uptime:    max(0, now.Sub(h.startedAt).Seconds()),
		Message:   "OK",
		Timestamp: now.UTC().Format(timestampLayout),
	})
}
