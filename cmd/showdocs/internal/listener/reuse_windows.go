//go:build windows

package listener

import (
	"syscall"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
	"golang.org/x/sys/windows"
)

func control(network, address string, c syscall.RawConn) error {
	var sockErr error
	if err := c.Control(func(fd uintptr) {
		sockErr = windows.SetsockoptInt(windows.Handle(fd), windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	}); err != nil {
		return err
	}
	if sockErr != nil {
		logger.Warn("Failed to set SO_REUSEADDR", "address", address, "error", sockErr)
	}
	return nil
}
