// Package api serves read-only queries over the simulated pools.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/paw-chain/pawswap/x/swap/simulation"
)

// Config holds server configuration
type Config struct {
	ListenAddr  string
	CORSOrigins []string
	// RequestsPerSecond is the per-client rate; zero disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		ListenAddr:        "127.0.0.1:8645",
		CORSOrigins:       []string{"*"},
		RequestsPerSecond: 20,
		Burst:             40,
	}
}

// Server exposes an Executor over HTTP. The executor is not safe for
// concurrent use, so every handler holds mu.
type Server struct {
	cfg        Config
	mu         sync.Mutex
	exec       *simulation.Executor
	router     *mux.Router
	limiter    *RateLimiter
	httpServer *http.Server
	checks     map[string]HealthChecker
	logger     log.Logger
}

// HealthChecker reports whether a component backing the server works.
type HealthChecker interface {
	HealthCheck() error
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithHealthCheck reports check under name on /health.
func WithHealthCheck(name string, check HealthChecker) ServerOption {
	return func(s *Server) { s.checks[name] = check }
}

// NewServer creates a new query server over exec
func NewServer(cfg Config, exec *simulation.Executor, logger log.Logger, opts ...ServerOption) *Server {
	s := &Server{
		cfg:    cfg,
		exec:   exec,
		router: mux.NewRouter(),
		checks: make(map[string]HealthChecker),
		logger: logger.With("module", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.RequestsPerSecond > 0 {
		s.limiter = NewRateLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/receipts", s.handleReceipts).Methods(http.MethodGet)
	s.router.HandleFunc("/pools", s.handlePools).Methods(http.MethodGet)

	pools := s.router.PathPrefix("/pools/{name}").Subrouter()
	pools.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)
	pools.HandleFunc("/quote", s.handleQuote).Methods(http.MethodGet)
	pools.HandleFunc("/twap", s.handleTWAP).Methods(http.MethodGet)
	pools.HandleFunc("/snapshots", s.handleSnapshots).Methods(http.MethodGet)
}

// Handler returns the router wrapped in recovery, rate limiting and CORS.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	if s.limiter != nil {
		h = s.limiter.Middleware(h)
	}
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(h)
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(h)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("query server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("query server stopped")
	return nil
}
