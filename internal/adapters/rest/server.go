package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"flathunter-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает маршруты. Вынесен отдельно для тестов
func NewRouter(handlers *HuntHandlers, allowedOrigins []string, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.HandleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/hunts", handlers.HandleStartHunt)
		r.Get("/exposes/{exposeID}", handlers.HandleGetExpose)
	})

	return r
}

func NewServer(listenPort string, handlers *HuntHandlers, allowedOrigins []string, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + listenPort,
			Handler:           NewRouter(handlers, allowedOrigins, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// Start блокируется до остановки сервера
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
