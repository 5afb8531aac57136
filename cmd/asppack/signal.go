//go:build !windows

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

func interruptSignals() []os.Signal {
	return []os.Signal{
		os.Interrupt,
		unix.SIGHUP,
		unix.SIGTERM,
		unix.SIGQUIT,
	}
}
