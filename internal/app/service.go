package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/antonrybalko/mergington-activities/internal/api"
	"github.com/antonrybalko/mergington-activities/internal/config"
	"github.com/antonrybalko/mergington-activities/internal/metrics"
	"github.com/antonrybalko/mergington-activities/internal/repository"
	"github.com/antonrybalko/mergington-activities/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

// Version represents the application version
const Version = "0.1.0"

// Service represents the application service
type Service struct {
	config *config.Config
	logger *zap.Logger
	sugar  *zap.SugaredLogger
	router chi.Router
	server *http.Server
}

// NewService creates a new application service from the environment
func NewService() (*Service, error) {
	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewServiceWithLogger(cfg, logger)
}

// NewServiceWithLogger wires the service from an already loaded configuration
func NewServiceWithLogger(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	sugar := logger.Sugar()

	// Load the seed dataset
	seed, err := config.LoadActivityConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities configuration: %w", err)
	}

	// Initialize registry, metrics and service
	registry := repository.NewMemoryActivityRepository(seed.Activities)
	m := metrics.New()
	activityService := service.NewActivityService(registry, m, sugar)
	if err := activityService.RecordRosterSizes(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to record roster sizes: %w", err)
	}

	// Initialize router
	router := chi.NewRouter()

	// Initialize API handler
	handler := api.NewHandler(activityService, sugar)

	// Register routes
	api.RegisterRoutes(router, handler, m.Handler(), sugar, Version, cfg.Environment)

	// Initialize HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	sugar.Infow("Activity registry initialized", "activities", len(seed.Activities))

	return &Service{
		config: cfg,
		logger: logger,
		sugar:  sugar,
		router: router,
		server: server,
	}, nil
}

// NewLogger builds a zap logger for the configured environment and level
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}

// Handler returns the HTTP handler of the service
func (s *Service) Handler() http.Handler {
	return s.router
}

// Run serves HTTP on the configured port until ctx is cancelled
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down within the configured timeout
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	s.sugar.Infow("Starting activities service",
		"version", Version,
		"environment", s.config.Environment,
		"addr", ln.Addr().String(),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.sugar.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		s.sugar.Info("Server exited gracefully")
		return nil
	})

	return g.Wait()
}

// Cleanup performs cleanup tasks
func (s *Service) Cleanup() {
	s.sugar.Info("Cleanup completed")

	// Sync logger; stderr/stdout sync errors are expected on some platforms
	_ = s.logger.Sync()
}
