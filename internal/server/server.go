package server

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Server ties the manager and handlers to an HTTP listener.
type Server struct {
	config  *Config
	logger  *log.Logger
	manager *Manager
	httpSrv *http.Server
}

func NewServer(config *Config, logger *log.Logger, rng *rand.Rand) *Server {
	manager := NewManager(NewMemoryStore(), logger, quartz.NewReal(), rng)

	mux := http.NewServeMux()
	NewHandler(manager, config, logger).Register(mux)

	return &Server{
		config:  config,
		logger:  logger.WithPrefix("server"),
		manager: manager,
		httpSrv: &http.Server{
			Addr:              config.Addr(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Manager exposes the session manager, mainly for tests and tooling.
func (s *Server) Manager() *Manager {
	return s.manager
}

// Start blocks serving HTTP until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.config.Addr())
	return s.httpSrv.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.httpSrv.Shutdown(ctx)
}
