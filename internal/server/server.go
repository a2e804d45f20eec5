package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/muurk/tmcatcher/internal/census"
	"github.com/muurk/tmcatcher/internal/logging"
)

// Config holds the exporter configuration
type Config struct {
	Listen         string        // Address to listen on, e.g. ":9464"
	CensusInterval time.Duration // How often the bot census is polled
	HealthInterval time.Duration // How often API health is checked
	ShutdownGrace  time.Duration // Upper bound on graceful shutdown
}

// Server serves Prometheus metrics and the latest census snapshot
type Server struct {
	config *Config
	poller *census.Poller
	router chi.Router
	http   *http.Server

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a new exporter polling source
func New(config *Config, source census.Source) *Server {
	if config.ShutdownGrace <= 0 {
		config.ShutdownGrace = 10 * time.Second
	}

	s := &Server{
		config: config,
		poller: census.NewPoller(source, config.CensusInterval, config.HealthInterval),
		router: chi.NewRouter(),
	}
	s.setupRoutes()

	s.http = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", metricsHandler())
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/census", s.handleCensus)
	})
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Poller returns the census poller backing /api/census
func (s *Server) Poller() *census.Poller {
	return s.poller
}

// Serve starts polling and serves on l until ctx is canceled or Shutdown is called
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	pollCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.listener = l
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.poller.Run(pollCtx)
	}()

	logging.Info("Exporter listening", zap.String("addr", l.Addr().String()))

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.http.Serve(l)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		cancel()
		s.wg.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Start listens on the configured address and blocks until SIGINT/SIGTERM
func (s *Server) Start() error {
	logging.Info("Starting census exporter",
		zap.String("addr", s.config.Listen),
		zap.Duration("census_interval", s.config.CensusInterval),
		zap.Duration("health_interval", s.config.HealthInterval),
	)

	l, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Serve(ctx, l)
}

// Shutdown stops the poller and drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down exporter...")

	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	ctx, done := context.WithTimeout(ctx, s.config.ShutdownGrace)
	defer done()

	err := s.http.Shutdown(ctx)
	if err != nil {
		logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
		_ = s.http.Close()
	}

	s.wg.Wait()
	logging.Sync()
	return err
}
