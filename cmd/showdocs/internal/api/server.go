package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/core"
	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
)

// HealthServer exposes liveness and readiness of the file server on a
// separate port. It only reads the file server's state.
type HealthServer struct {
	server   *http.Server
	listener net.Listener
	state    func() core.State
}

func NewHealthServer(addr string, state func() core.State) *HealthServer {
	mux := http.NewServeMux()
	hs := &HealthServer{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
		state: state,
	}

	mux.HandleFunc("/health", hs.handleHealth)
	mux.HandleFunc("/ready", hs.handleReady)

	return hs
}

// Start binds the health listener and serves it in the background.
func (s *HealthServer) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to start health server on %s: %w", s.server.Addr, err)
	}
	s.listener = ln

	go func() {
		logger.Info("Health server listening", "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *HealthServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *HealthServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HealthServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *HealthServer) handleReady(w http.ResponseWriter, r *http.Request) {
	state := s.state()
	if state == core.StateRunning {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte("not ready: " + state.String()))
}
