//go:build !windows

package app

import (
	"golang.org/x/sys/unix"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	if err := app.screen.Suspend(); err != nil {
		app.logger.Warn("suspend failed", "err", err)
		return
	}
	// Stop only this process; avoid signalling the entire process group
	// (which can include the wrapper shell function that launched mdir,
	// breaking job control like `fg`). Execution continues here on SIGCONT.
	if err := unix.Kill(unix.Getpid(), unix.SIGTSTP); err != nil {
		app.logger.Warn("SIGTSTP failed", "err", err)
	}
	app.resumeAfterStop()
}

func (app *Application) resumeAfterStop() {
	if err := app.screen.Resume(); err != nil {
		app.logger.Warn("resume failed", "err", err)
		return
	}
	// Re-enable mouse reporting after resume
	app.screen.EnableMouse()
	app.screen.Sync()
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.state.ScreenWidth = w
		app.state.ScreenHeight = h
	}
}
