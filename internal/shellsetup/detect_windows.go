//go:build windows

package shellsetup

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// DetectParentShellName returns the image name of the parent process, or ""
// when it cannot be queried.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(ppid))
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(handle)

	buf := make([]uint16, windows.MAX_PATH)
	for {
		size := uint32(len(buf))
		err = windows.QueryFullProcessImageName(handle, 0, &buf[0], &size)
		if err == nil {
			return canonicalShellName(normalizeShellName(windows.UTF16ToString(buf[:size])))
		}
		if !errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
			return ""
		}
		buf = make([]uint16, len(buf)*2)
	}
}
