//go:build !windows

package app

import (
	"os"

	"golang.org/x/sys/unix"
)

func terminationSignals() []os.Signal {
	return []os.Signal{unix.SIGTERM, unix.SIGHUP}
}

func flushConsoleInput() error {
	return nil
}
