//go:build unix

package listener

import (
	"syscall"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
	"golang.org/x/sys/unix"
)

func control(network, address string, c syscall.RawConn) error {
	var sockErr error
	if err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	if sockErr != nil {
		logger.Warn("Failed to set SO_REUSEADDR", "address", address, "error", sockErr)
	}
	return nil
}
