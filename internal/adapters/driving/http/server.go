package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/ports/driving"
	"github.com/firstresponse-ai/firstresponse-core/internal/worker"
)

// Readiness reports whether the backend can answer questions
type Readiness interface {
	CheckReady(ctx context.Context) error
	Config() *domain.RuntimeConfig
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	router          *http.ServeMux
	version         string
	authRequired    bool
	shutdownTimeout time.Duration
	logger          *slog.Logger

	// Services
	firstAidService  driving.FirstAidService
	rationingService driving.RationingService
	authService      driving.AuthService

	// Infrastructure
	readiness Readiness
	pool      *worker.Pool // nil runs pipeline work on the request goroutine
	metrics   http.Handler // nil disables GET /metrics
}

// Config holds server configuration
type Config struct {
	Host            string
	Port            int
	Version         string
	CORSOrigins     []string
	AuthRequired    bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8000,
		Version:         "dev",
		CORSOrigins:     []string{"http://localhost:8080"},
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    660 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Dependencies groups what the handlers call into
type Dependencies struct {
	FirstAid  driving.FirstAidService
	Rationing driving.RationingService
	Auth      driving.AuthService
	Readiness Readiness
	Pool      *worker.Pool
	Metrics   http.Handler
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies) *Server {
	defaults := DefaultConfig()
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		authRequired:     cfg.AuthRequired,
		shutdownTimeout:  cfg.ShutdownTimeout,
		logger:           cfg.Logger,
		firstAidService:  deps.FirstAid,
		rationingService: deps.Rationing,
		authService:      deps.Auth,
		readiness:        deps.Readiness,
		pool:             deps.Pool,
		metrics:          deps.Metrics,
	}

	s.setupRoutes()

	handler := chain(s.router,
		recoverPanics(s.logger),
		logRequests(s.logger),
		allowOrigins(cfg.CORSOrigins))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	gate := requireFinalToken(s.authService)
	protect := func(h http.HandlerFunc) http.Handler {
		if s.authRequired {
			return gate(h)
		}
		return h
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwagger)
	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics)
	}

	// Login stub (public)
	s.router.HandleFunc("POST /token", s.handleLogin)
	s.router.HandleFunc("POST /verify_otp", s.handleVerifyOTP)

	// Question and rationing endpoints
	s.router.Handle("GET /first_aid", protect(s.handleFirstAid))
	s.router.Handle("GET /ration_all", protect(s.handleRationAll))
	s.router.Handle("POST /ration_all_explained", protect(s.handleRationExplained))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
