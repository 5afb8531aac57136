package main

import (
	"os"

	"golang.org/x/sys/windows"
)

func interruptSignals() []os.Signal {
	return []os.Signal{
		os.Interrupt,
		windows.SIGHUP,
		windows.SIGTERM,
		windows.SIGQUIT,
	}
}
