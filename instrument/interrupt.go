//go:build !windows

package instrument

import (
	"os/exec"

	"golang.org/x/sys/unix"
)

func interrupt(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Signal(unix.SIGINT)
}
