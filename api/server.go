/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       The widget frontend runs on its own dev origin

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", h.GetSummary)

		r.Route("/hours", func(r chi.Router) {
			r.Post("/", h.SetHours)
			r.Post("/add", h.AddHours)
			r.Get("/total", h.GetTotal)
			r.Get("/recent", h.GetRecent)
			r.Get("/range", h.GetRangeTotal)
			r.Get("/month/{year}/{month}", h.GetMonthTotal)
			r.Get("/{date}", h.GetDay)
			r.Delete("/{date}", h.DeleteHours)
		})

		r.Get("/calendar/{year}/{month}", h.GetCalendar)
		r.Post("/export", h.Export)
	})

	return r
}
