//go:build !windows

package shellsetup

import (
	"fmt"
	"os"
	"strings"
)

// DetectParentShellName returns the parent's command name on systems with
// procfs, or "" elsewhere.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 1 {
		return ""
	}
	comm, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", ppid))
	if err != nil {
		return ""
	}
	// Login shells show up as "-zsh".
	return strings.TrimPrefix(strings.TrimSpace(string(comm)), "-")
}
