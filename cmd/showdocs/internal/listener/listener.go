package listener

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
)

// ErrInvalidAddress is returned when the listen address is not an IPv4 literal.
var ErrInvalidAddress = errors.New("invalid listen address")

// Listen binds a TCP listener on addr:port. addr must be a dotted IPv4
// address. SO_REUSEADDR is requested where the platform supports it; a
// failure to set it is only logged.
func Listen(ctx context.Context, addr string, port int) (*net.TCPListener, error) {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	lc := net.ListenConfig{Control: control}
	ln, err := lc.Listen(ctx, "tcp4", net.JoinHostPort(ip.String(), strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("bind failed on %s:%d: %w", addr, port, err)
	}
	return ln.(*net.TCPListener), nil
}
