package launcher

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hasirciogluhq/showdocs/cmd/showdocs/internal/logger"
)

// ShellLauncher runs a startup command through the platform shell in the
// background. The child inherits stdout and stderr unless overridden.
type ShellLauncher struct {
	Stdout io.Writer
	Stderr io.Writer

	// OnExit is called from the reaping goroutine once the child exits.
	OnExit func(err error)
}

func New() *ShellLauncher {
	return &ShellLauncher{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Launch starts command and returns without waiting for it. An empty
// command is a no-op.
func (l *ShellLauncher) Launch(command string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}

	cmd := shellCommand(command)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	logger.Info("Executing startup command", "command", command)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to execute startup command: %w", err)
	}

	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		if err != nil {
			logger.Warn("Startup command exited with error", "pid", pid, "error", err)
		} else {
			logger.Debug("Startup command exited", "pid", pid)
		}
		if l.OnExit != nil {
			l.OnExit(err)
		}
	}()
	return nil
}
