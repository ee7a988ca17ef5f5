package middleware

import (
	"log/slog"
	"net/http"

	"gsnake-editor-api/internal/shared/config"
	"gsnake-editor-api/internal/shared/errors"
	"gsnake-editor-api/internal/shared/response"

	"github.com/rs/cors"
)

// CORSMiddleware enforces the startup-time origin allow-list. rs/cors emits
// the response headers and handles preflights for allowed origins; the outer
// gate turns a disallowed origin into an explicit 403 instead of the silent
// header omission browsers are left to interpret. Requests without an Origin
// header always pass: non-browser clients are not subject to CORS.
type CORSMiddleware struct {
	allowed map[string]struct{}
	inner   *cors.Cors
}

func NewCORS(cfg config.CORSConfig) *CORSMiddleware {
	logger := slog.With("component", "cors", "operation", "setup")
	logger.Debug("Setting up CORS middleware")

	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	inner := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		Debug:            cfg.Debug,
	})

	logger.Info("CORS middleware configured",
		"allowed_origins", cfg.AllowedOrigins,
		"allow_credentials", true,
	)

	return &CORSMiddleware{allowed: allowed, inner: inner}
}

func (c *CORSMiddleware) Middleware(next http.Handler) http.Handler {
	handler := c.inner.Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			if _, ok := c.allowed[origin]; !ok {
				logger := slog.With("middleware", "cors", "origin", origin)
				response.Error(w, r, logger, errors.Forbidden("Not allowed by CORS"))
				return
			}
		}
		handler.ServeHTTP(w, r)
	})
}
