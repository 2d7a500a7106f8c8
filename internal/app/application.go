package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdir/internal/config"
	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	"github.com/kk-code-lab/mdir/internal/events"
	fsutil "github.com/kk-code-lab/mdir/internal/fs"
	"github.com/kk-code-lab/mdir/internal/logging"
	"github.com/kk-code-lab/mdir/internal/ops"
	statepkg "github.com/kk-code-lab/mdir/internal/state"
	inputui "github.com/kk-code-lab/mdir/internal/ui/input"
	renderui "github.com/kk-code-lab/mdir/internal/ui/render"
	"github.com/kk-code-lab/mdir/internal/watch"
)

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	renderer   *renderui.Renderer
	dispatcher *inputui.Dispatcher
	refresher  *statepkg.Refresher
	events     *events.Multiplexer
	watcher    *watch.Watcher
	logger     *slog.Logger

	ctx         context.Context
	stopSignals context.CancelFunc
	closeOnce   sync.Once
}

// NewApplication opens the terminal and lists startPath. It fails if the
// directory cannot be read or the terminal cannot be initialised.
func NewApplication(cfg *config.Config, logger *slog.Logger, startPath string) (*Application, error) {
	st, err := newInitialState(cfg, startPath)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so wheel events don't leak as key events.
	screen.EnableMouse()

	app, err := newApplication(screen, st, cfg, logger)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newInitialState(cfg *config.Config, startPath string) (*statepkg.AppState, error) {
	hide, err := fsutil.CompilePatterns(cfg.HidePatterns)
	if err != nil {
		return nil, apperrors.E(apperrors.KindConfig, "hide_patterns", "", err)
	}
	return statepkg.New(startPath, cfg.ShowHidden, hide)
}

// newApplication wires the components around an initialised screen.
func newApplication(screen tcell.Screen, st *statepkg.AppState, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	st.ScreenWidth, st.ScreenHeight = screen.Size()

	app := &Application{
		screen:   screen,
		state:    st,
		renderer: renderui.NewRenderer(screen),
		logger:   logger,
	}

	editor, ok := ops.DetectEditor(cfg.Editor)
	if !ok {
		logger.Info("no editor found; editing disabled")
	}
	manager := ops.NewManager(ops.Options{
		Editor:   editor,
		Terminal: terminal{screen},
		Logger:   logger,
	})
	app.dispatcher = inputui.NewDispatcher(inputui.Collaborators{
		Ops:     manager,
		Suspend: app.suspendToShell,
		Logger:  logger,
	})
	app.refresher = statepkg.NewRefresher(statepkg.RefresherOptions{
		Debounce: cfg.PreviewDebounce,
		Cap:      cfg.PreviewCap,
		Logger:   logger,
	})

	if cfg.Watch {
		w, err := watch.New(logger)
		if err != nil {
			logger.Warn("filesystem watcher unavailable", "err", err)
		} else {
			app.watcher = w
			app.syncWatcher()
		}
	}

	app.ctx, app.stopSignals = signal.NotifyContext(context.Background(), terminationSignals()...)
	app.events = events.New(app.ctx, screen, events.Options{
		TickInterval: cfg.TickInterval,
		Capacity:     cfg.QueueCapacity,
		Logger:       logger,
	})

	logger.Info("started", "path", st.CurrentPath, "tick", cfg.TickInterval)
	return app, nil
}

// Close stops the event producer and the watcher and restores the terminal.
func (app *Application) Close() error {
	app.closeOnce.Do(func() {
		app.events.Close()
		app.stopSignals()
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.Warn("closing watcher", "err", err)
			}
		}
		app.screen.Fini()
	})
	return nil
}

// CurrentPath returns the directory being browsed, for the shell integration
// to cd into on exit.
func (app *Application) CurrentPath() string {
	return app.state.CurrentPath
}

// GetCwd returns current working directory.
func GetCwd() (string, error) {
	return os.Getwd()
}

// terminal adapts tcell.Screen for ops.Manager, flushing console input that
// piled up while a child process owned the terminal.
type terminal struct {
	tcell.Screen
}

func (t terminal) Resume() error {
	_ = flushConsoleInput()
	return t.Screen.Resume()
}
