package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// CORS enforces the origin allow-list. Requests without an Origin header are
// allowed; requests from an origin outside the list are rejected before they
// reach any handler. Preflight requests are answered here with 204.
func (m *Middleware) CORS(next http.Handler) http.Handler {
	allowed := slices.Clone(m.cfg.CORS.AllowedOrigins)
	allowMethods := strings.Join(m.cfg.CORS.AllowedMethods, ",")
	allowHeaders := strings.Join(m.cfg.CORS.AllowedHeaders, ",")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		headers := w.Header()

		// An empty origin is a same-origin or non-browser caller
		if origin != "" {
			if !slices.Contains(allowed, origin) {
				GetLogger(r.Context(), m.log).Warn().
					Str("origin", origin).
					Str("path", r.URL.Path).
					Msg("origin rejected")
				http.Error(w, "Not allowed by CORS", http.StatusForbidden)
				return
			}

			headers.Set("Access-Control-Allow-Origin", origin)
			headers.Add("Vary", "Origin")
		}

		// Preflight
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			headers.Set("Access-Control-Allow-Methods", allowMethods)
			headers.Set("Access-Control-Allow-Headers", allowHeaders)
			headers.Set("Content-Length", "0")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
