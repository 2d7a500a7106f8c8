//go:build windows

package app

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

func terminationSignals() []os.Signal {
	return []os.Signal{syscall.SIGTERM}
}

func flushConsoleInput() error {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return err
	}
	return windows.FlushConsoleInputBuffer(handle)
}
