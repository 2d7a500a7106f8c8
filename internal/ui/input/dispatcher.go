// Package input routes events to state changes according to the current mode.
package input

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdir/internal/events"
	fsutil "github.com/kk-code-lab/mdir/internal/fs"
	"github.com/kk-code-lab/mdir/internal/logging"
	statepkg "github.com/kk-code-lab/mdir/internal/state"
)

// Operations are the filesystem and terminal actions the dispatcher delegates.
type Operations interface {
	Delete(entries ...fsutil.Entry) error
	Rename(entry fsutil.Entry, newName string) error
	Create(dir, name string) error
	Mkdir(dir, name string) error
	Edit(entry fsutil.Entry) error
	Yank(paths ...string) error
}

// Collaborators are the dispatcher's dependencies.
type Collaborators struct {
	Ops Operations
	// Suspend hands the terminal back to the shell (Ctrl+Z). Optional.
	Suspend func()
	// Home resolves "~". Defaults to os.UserHomeDir.
	Home   func() (string, error)
	Logger *slog.Logger
}

// Dispatcher applies events to the application state.
type Dispatcher struct {
	ops     Operations
	suspend func()
	home    func() (string, error)
	logger  *slog.Logger
}

func NewDispatcher(collab Collaborators) *Dispatcher {
	d := &Dispatcher{
		ops:     collab.Ops,
		suspend: collab.Suspend,
		home:    collab.Home,
		logger:  collab.Logger,
	}
	if d.home == nil {
		d.home = os.UserHomeDir
	}
	if d.logger == nil {
		d.logger = logging.Discard()
	}
	return d
}

// Handle applies ev to st and reports whether the application should quit.
// Failures are recorded on st; they never escape.
func (d *Dispatcher) Handle(ev events.Event, st *statepkg.AppState) bool {
	switch e := ev.(type) {
	case events.Tick:
		return false
	case events.Resize:
		st.ScreenWidth, st.ScreenHeight = e.Width, e.Height
		return false
	case events.Mouse:
		d.handleMouse(e, st)
		return false
	case events.Key:
		return d.handleKey(e, st)
	default:
		return false
	}
}

func (d *Dispatcher) handleKey(k events.Key, st *statepkg.AppState) bool {
	switch st.Mode {
	case statepkg.ModeNormal:
		return d.handleNormal(k, st)
	case statepkg.ModeInsert:
		d.handleInsert(k, st)
		return false
	case statepkg.ModeCommand:
		return d.handleCommand(k, st)
	case statepkg.ModeVisual:
		d.handleVisual(k, st)
		return false
	default:
		panic(fmt.Sprintf("input: unhandled mode %d", int(st.Mode)))
	}
}

func (d *Dispatcher) handleMouse(m events.Mouse, st *statepkg.AppState) {
	if st.Mode != statepkg.ModeNormal && st.Mode != statepkg.ModeVisual {
		return
	}
	switch {
	case m.Buttons&tcell.WheelUp != 0:
		st.MoveSelection(-1)
	case m.Buttons&tcell.WheelDown != 0:
		st.MoveSelection(1)
	}
}

// report records the outcome of a user action.
func (d *Dispatcher) report(st *statepkg.AppState, err error) {
	if err != nil {
		d.logger.Debug("action failed", "err", err)
		st.SetError(err)
		return
	}
	st.ClearError()
}

func isQuit(k events.Key) bool {
	switch k.Key {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return k.Mod&tcell.ModCtrl != 0 && (k.Rune == 'q' || k.Rune == 'c')
	}
	return false
}

func isEscape(k events.Key) bool {
	return k.Key == tcell.KeyEscape
}

// isCancel is Escape or Ctrl+C, which back out of every mode except Normal.
func isCancel(k events.Key) bool {
	return isEscape(k) || k.Key == tcell.KeyCtrlC
}

func isRune(k events.Key, runes ...rune) bool {
	if k.Key != tcell.KeyRune || k.Mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
		return false
	}
	for _, r := range runes {
		if k.Rune == r {
			return true
		}
	}
	return false
}
