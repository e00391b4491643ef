package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/db"
	"github.com/jakechorley/staffhours/pkg/metrics"
)

// Server represents the HTTP API server
type Server struct {
	config      config.ServerConfig
	router      *chi.Mux
	employees   db.EmployeeStore
	preferences db.PreferenceStore
	metrics     *metrics.Manager
	logger      *zap.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	employees db.EmployeeStore,
	preferences db.PreferenceStore,
	m *metrics.Manager,
	logger *zap.Logger,
) *Server {
	if m == nil {
		m = metrics.NewManager()
	}
	s := &Server{
		config:      cfg,
		employees:   employees,
		preferences: preferences,
		metrics:     m,
		logger:      logger,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(s.metrics.Middleware)
	r.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	allowedOrigins := s.config.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", s.handleListEmployees)
			r.Post("/", s.handleCreateEmployee)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetEmployee)
				r.Put("/", s.handleUpdateEmployee)
				r.Delete("/", s.handleDeleteEmployee)
				r.Get("/preferences", s.handleGetEmployeePreference)
				r.Put("/preferences", s.handleSubmitPreference)
			})
		})

		r.Get("/preferences", s.handleListPreferences)
		r.Get("/schedule", s.handleGenerateSchedule)
	})

	s.router = r
}
