//go:build windows

package launcher

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// cmd.exe gets the command line verbatim; Go's argument quoting would
// break commands that carry their own quotes.
func shellCommand(command string) *exec.Cmd {
	cmd := exec.Command("cmd.exe")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       "cmd.exe /c " + command,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	return cmd
}
