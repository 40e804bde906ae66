package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
)

type httpServer struct {
	server *http.Server

	logger *logger.Logger
}

func newHTTPServer(router *chi.Mux, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      router,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil {
		h.logger.Error().Msgf("HTTP server ListenAndServe: %v", err)
	}
}

func (h *httpServer) Shutdown() {
	if err := h.server.Shutdown(context.Background()); h.server != nil && err != nil {
		h.logger.Error().Msgf("HTTP server Shutdown: %v", err)
	}
}
