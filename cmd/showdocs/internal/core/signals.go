package core

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
)

// WatchSignals installs SIGINT/SIGTERM handling. The first signal calls
// stop; a second one calls exit(0) without waiting for the loop. The
// returned function uninstalls the handler.
func WatchSignals(stop func(), exit func(code int)) (cancel func()) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go watch(sigCh, done, stop, exit)

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}

func watch(sigCh <-chan os.Signal, done <-chan struct{}, stop func(), exit func(code int)) {
	received := false
	for {
		select {
		case <-done:
			return
		case sig := <-sigCh:
			if received {
				logger.Warn("Received second termination signal, exiting immediately", "signal", sig)
				exit(0)
				return
			}
			received = true
			logger.Info("Received termination signal, shutting down gracefully...", "signal", sig)
			stop()
		}
	}
}
