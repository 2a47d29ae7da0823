// Package api exposes the round session engine over HTTP. Authentication
// is an external collaborator: callers arrive with an already-verified
// user id carried in the X-User-ID header.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/frontendschool-official/interview-engine/internal/progress"
	"github.com/frontendschool-official/interview-engine/internal/prompt"
	"github.com/frontendschool-official/interview-engine/internal/session"
)

// Server is the HTTP API server.
type Server struct {
	router     *chi.Mux
	manager    *session.Manager
	aggregator *progress.Aggregator
	templates  *prompt.Store
	logger     *slog.Logger
}

// NewServer wires the engine's services into a routed server.
func NewServer(manager *session.Manager, aggregator *progress.Aggregator, templates *prompt.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		manager:    manager,
		aggregator: aggregator,
		templates:  templates,
		logger:     logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "X-User-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/rounds", func(r chi.Router) {
			r.Post("/start", s.handleStartRound)
			r.Post("/restart", s.handleRestartRound)
			r.Post("/complete", s.handleCompleteRound)
			r.Get("/{simulationID}/{roundIndex}", s.handleGetRound)
		})

		r.Get("/progress", s.handleProgressOverview)
		r.Get("/progress/{simulationID}", s.handleSimulationProgress)

		r.Get("/simulations", s.handleListSimulations)
		r.Get("/simulations/{simulationID}", s.handleGetSimulation)

		r.Get("/templates/versions", s.handleTemplateVersions)
	})

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
