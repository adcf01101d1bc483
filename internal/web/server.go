package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/LYYYYL/AddressValidator/internal/logging"
	"github.com/LYYYYL/AddressValidator/internal/telemetry"
	"github.com/LYYYYL/AddressValidator/internal/web/handlers"
	"github.com/LYYYYL/AddressValidator/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *Config
	validator  handlers.AddressValidator
	log        *zap.Logger
	metrics    *telemetry.Metrics
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance. metrics may be nil.
func NewServer(cfg *Config, validator handlers.AddressValidator, log *zap.Logger, metrics *telemetry.Metrics) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if validator == nil {
		return nil, errors.New("web server requires a validator")
	}

	server := &Server{
		config:    cfg,
		validator: validator,
		log:       logging.OrNop(log).Named("web"),
		metrics:   metrics,
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, fmt.Sprint(cfg.Server.Port)),
		Handler:      server.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout),
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	validationHandler := handlers.NewValidationHandler(s.validator, s.log)
	healthHandler := &handlers.HealthHandler{}

	s.router.HandleFunc("/validation/", validationHandler.Validate).Methods(http.MethodPost, http.MethodOptions)
	s.router.HandleFunc("/healthy", healthHandler.Healthy).Methods(http.MethodGet)

	if s.config.Features.MetricsEnabled && s.metrics != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestLogging(s.log))
	s.router.Use(middleware.Metrics(s.metrics))
	s.router.Use(middleware.CORS(s.config.CORS.AllowedOrigins))
}

// Handler returns the routed handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the address the server listens on
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.Server.ShutdownTimeout))
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}

// Start serves until SIGINT or SIGTERM
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}
