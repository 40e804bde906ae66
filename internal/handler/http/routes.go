package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes requiring a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sync", h.sync)

		r.Get("/api/conflicts", h.listConflicts)
		r.Post("/api/conflicts/{conflictID}/resolve", h.resolveConflict)
		r.Post("/api/conflicts/{conflictID}/ignore", h.ignoreConflict)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
