package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/synaxaire-program/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health                               table status
//	GET  /api/test                             liveness
//	GET  /api/synaxaire/{month}                Coptic month lookup
//	GET  /api/synaxaire/{month}/{day}          Coptic day lookup
//	POST /api/generate-program                 docx download (key, rate limited)
//	GET  /api/v1/program/{year}/{month}        resolved month as JSON (key, rate limited)
//	GET  /api/v1/program/{year}/{month}.ics    iCalendar export (key, rate limited)
func SetupRoutes(handlers *Handlers, cfg *config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(log),
		RequestIDMiddleware(),
		LoggingMiddleware(log),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)
	r.Get("/api/test", handlers.Ping)
	r.Get("/api/synaxaire/{month}", handlers.GetSynaxaireMonth)
	r.Get("/api/synaxaire/{month}/{day}", handlers.GetSynaxaire)

	// ==========================================================================
	// Generation routes (API key when configured, rate limited per client)
	// ==========================================================================
	limiter := NewClientLimiter(cfg.GenerateRate, cfg.GenerateBurst)

	r.Group(func(r chi.Router) {
		r.Use(
			AuthMiddleware(cfg, log),
			RateLimitMiddleware(limiter, log),
		)

		r.Post("/api/generate-program", handlers.GenerateProgram)
		r.Get("/api/v1/program/{year:[0-9]+}/{month:[0-9]+}", handlers.GetMonth)
		r.Get("/api/v1/program/{year:[0-9]+}/{month:[0-9]+}.ics", handlers.GetMonthICS)
	})

	return r
}
