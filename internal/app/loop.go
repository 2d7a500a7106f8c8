package app

import (
	"errors"

	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	"github.com/kk-code-lab/mdir/internal/events"
)

// Run drives the main loop until the user quits. Each cycle renders, waits
// for the next event, dispatches it and refreshes the preview. Running out of
// events without a quit request is an error, unless a termination signal
// caused it.
func (app *Application) Run() error {
	defer app.logger.Info("stopped", "path", app.state.CurrentPath)

	app.refresher.Refresh(app.state)
	for {
		app.renderer.Render(app.state)

		ev, err := app.events.Next()
		if err != nil {
			if errors.Is(err, apperrors.ErrChannelClosed) && app.ctx.Err() != nil {
				app.logger.Info("terminated by signal")
				return nil
			}
			return err
		}

		if app.dispatcher.Handle(ev, app.state) {
			return nil
		}

		if _, ok := ev.(events.Tick); ok {
			app.reloadIfChanged()
		}
		app.syncWatcher()
		app.refresher.Refresh(app.state)
	}
}

// syncWatcher points the watcher at the current directory.
func (app *Application) syncWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Watch(app.state.CurrentPath); err != nil {
		app.logger.Debug("cannot watch directory", "path", app.state.CurrentPath, "err", err)
	}
}

// reloadIfChanged rebuilds the listing when the watcher saw a change.
func (app *Application) reloadIfChanged() {
	if app.watcher == nil || !app.watcher.Changed() {
		return
	}
	if err := app.state.Reload(); err != nil {
		app.logger.Debug("reload after change failed", "err", err)
		app.state.SetError(err)
		return
	}
	app.state.InvalidatePreview()
}
