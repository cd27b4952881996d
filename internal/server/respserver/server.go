package respserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davrk/respkv/internal/store"
	"github.com/davrk/respkv/internal/telemetry/metric"
)

// Config holds the RESP server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// ReadTimeout is the timeout for completing a started request
	// (default: 30s). Helps prevent slowloris attacks.
	ReadTimeout time.Duration
	// WriteTimeout is the timeout for writing a response (default: 30s).
	WriteTimeout time.Duration
	// IdleTimeout is the timeout for idle connections (default: 5m).
	IdleTimeout time.Duration
	// RateLimit is the maximum number of requests per second per IP
	// (default: 1000). Set to 0 to disable rate limiting.
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:6379",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    1000,
	}
}

// Server accepts RESP connections and serves them against one shared
// store.
type Server struct {
	cfg     *Config
	store   *store.Store
	logger  *slog.Logger
	metrics *metric.Metrics
	limiter *limiterRegistry

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a new RESP server around the given store. A nil cfg
// selects the defaults; a nil metrics disables instrumentation.
func New(cfg *Config, st *store.Store, logger *slog.Logger, metrics *metric.Metrics) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	var rl *limiterRegistry
	if cfg.RateLimit > 0 {
		rl = newLimiterRegistry(cfg.RateLimit)
	}

	return &Server{
		cfg:     cfg,
		store:   st,
		logger:  logger,
		metrics: metrics,
		limiter: rl,
	}
}

// Start binds the listen address and begins accepting connections.
// It returns once the listener is bound; accepted connections are
// served on their own goroutines until Shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)
	s.logger.Info("resp server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, ln); err != nil && s.running.Load() {
			s.logger.Error("resp server accept error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listen address, nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting connections and waits for in-flight
// handlers to finish, up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			firstErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, newConn(c))
		}()
	}
}
