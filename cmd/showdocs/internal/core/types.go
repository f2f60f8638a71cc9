package core

import (
	"net"
	"time"
)

// ConnectionHandler serves a single accepted connection.
// The Server closes the connection once HandleConnection returns.
type ConnectionHandler interface {
	HandleConnection(conn net.Conn)
}

// Listener is a net.Listener whose Accept can be bounded by a deadline.
// *net.TCPListener satisfies it.
type Listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// Launcher starts an auxiliary process and does not wait for it.
// Implementations are selected per platform at build time.
type Launcher interface {
	Launch(command string) error
}

// State is the lifecycle position of a Server.
type State int32

const (
	StateRunning State = iota
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
