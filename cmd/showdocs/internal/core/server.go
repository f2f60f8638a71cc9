package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
)

// DefaultPollInterval bounds how long Accept blocks before the shutdown
// state is checked again.
const DefaultPollInterval = time.Second

// Server accepts connections one at a time and hands each to the
// ConnectionHandler. A connection is fully served and closed before the
// next Accept.
type Server struct {
	Listener          Listener
	ConnectionHandler ConnectionHandler
	PollInterval      time.Duration

	state atomic.Int32
}

// Serve runs the accept loop until Stop is called or ctx is cancelled.
// It returns nil on a requested shutdown and an error if Accept fails
// while the server is still running. The listener is left open.
func (s *Server) Serve(ctx context.Context) error {
	stopOnCancel := context.AfterFunc(ctx, s.Stop)
	defer stopOnCancel()
	defer s.state.Store(int32(StateStopped))

	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	for s.State() == StateRunning {
		if err := s.Listener.SetDeadline(time.Now().Add(interval)); err != nil {
			if s.State() != StateRunning {
				break
			}
			return fmt.Errorf("failed to set accept deadline: %w", err)
		}

		conn, err := s.Listener.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if s.State() != StateRunning {
				break
			}
			logger.Error("Accept failed", "error", err)
			return fmt.Errorf("accept failed: %w", err)
		}

		s.handleConnection(conn)
	}

	logger.Info("Server shutting down...")
	return nil
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	logger.Debug("Connection accepted", "remote_addr", conn.RemoteAddr())
	s.ConnectionHandler.HandleConnection(conn)
}

// Stop asks the accept loop to exit. The loop notices within one poll
// interval, or after the connection being served completes. Safe to call
// from any goroutine, any number of times.
func (s *Server) Stop() {
	s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping))
}

// State reports the current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}
