package router

import (
	"net/http"

	"github.com/devsynchub/contactmail/internal/config"
	"github.com/devsynchub/contactmail/internal/handler"
	"github.com/devsynchub/contactmail/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Contact form
	mux.HandleFunc("POST /api/send-email", h.SendEmail)

	// Health check (only in deployments that expose it)
	if cfg.Server.HealthEnabled {
		mux.HandleFunc("GET /api/health", h.Health)
	}

	// Apply middleware stack
	var handler http.Handler = mux

	// CORS (rejects origins outside the allow-list before routing)
	handler = mw.CORS(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
