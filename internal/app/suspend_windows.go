//go:build windows

package app

// On Windows there is no SIGTSTP/SIGCONT; treat suspend as no-op.
func (app *Application) suspendToShell() {
	app.state.SetStatus("suspend is not supported on windows")
}
