// Package ops performs the filesystem and terminal actions the dispatcher
// delegates: delete, rename, create, edit and yank.
package ops

import (
	"log/slog"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"
	"github.com/kk-code-lab/mdir/internal/logging"
)

// Terminal is the part of tcell.Screen needed to hand the tty to a child process.
type Terminal interface {
	Suspend() error
	Resume() error
	Sync()
}

// Options configures a Manager.
type Options struct {
	// Editor is the resolved editor argv; the file path is appended.
	Editor   []string
	Terminal Terminal
	Logger   *slog.Logger
}

// Manager carries out user actions on behalf of the dispatcher.
type Manager struct {
	editor   []string
	terminal Terminal
	logger   *slog.Logger

	writeClipboard func(string) error
	openTTY        func() (*os.File, error)
	run            func(*exec.Cmd) error
}

func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		editor:         opts.Editor,
		terminal:       opts.Terminal,
		logger:         logger,
		writeClipboard: clipboard.WriteAll,
		openTTY: func() (*os.File, error) {
			return os.OpenFile("/dev/tty", os.O_RDWR, 0)
		},
		run: (*exec.Cmd).Run,
	}
}
