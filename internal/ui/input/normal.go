package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdir/internal/command"
	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	"github.com/kk-code-lab/mdir/internal/events"
	fsutil "github.com/kk-code-lab/mdir/internal/fs"
	statepkg "github.com/kk-code-lab/mdir/internal/state"
)

// modeKeys enter another mode from Normal without touching anything else.
var modeKeys = map[rune]statepkg.Mode{
	'i': statepkg.ModeInsert,
	':': statepkg.ModeCommand,
	'v': statepkg.ModeVisual,
}

func (d *Dispatcher) handleNormal(k events.Key, st *statepkg.AppState) bool {
	if isQuit(k) {
		return true
	}
	if k.Key == tcell.KeyRune && k.Mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		if m, ok := modeKeys[k.Rune]; ok {
			st.EnterMode(m)
			return false
		}
	}

	st.SetStatus("")
	switch k.Key {
	case tcell.KeyEscape:
		st.ClearError()
		return false
	case tcell.KeyCtrlZ:
		if d.suspend != nil {
			d.suspend()
		}
		return false
	case tcell.KeyDown:
		st.MoveSelection(1)
	case tcell.KeyUp:
		st.MoveSelection(-1)
	case tcell.KeyLeft:
		d.report(st, st.NavigateUp())
		return false
	case tcell.KeyRight, tcell.KeyEnter:
		d.report(st, st.NavigateInto())
		return false
	case tcell.KeyHome:
		st.SelectFirst()
	case tcell.KeyEnd:
		st.SelectLast()
	case tcell.KeyRune:
		if k.Mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		d.report(st, d.normalRune(k.Rune, st))
		return false
	default:
		return false
	}
	st.ClearError()
	return false
}

func (d *Dispatcher) normalRune(r rune, st *statepkg.AppState) error {
	switch r {
	case 'j':
		st.MoveSelection(1)
	case 'k':
		st.MoveSelection(-1)
	case 'h':
		return st.NavigateUp()
	case 'l':
		return st.NavigateInto()
	case 'g':
		st.SelectFirst()
	case 'G':
		st.SelectLast()
	case 'd':
		return d.confirmDelete(st, false)
	case 'e':
		return d.editSelected(st)
	case 'r':
		entry, ok := st.SelectedEntry()
		if !ok || entry.IsParent() {
			return apperrors.Errorf(apperrors.KindOperation, "rename", "nothing to rename")
		}
		d.prompt(st, string(command.Rename)+" "+command.Quote(entry.Name))
	case 'n':
		d.prompt(st, string(command.New)+" ")
	case 'y':
		return d.yankSelection(st)
	case '.':
		if err := st.ToggleHidden(); err != nil {
			return err
		}
		st.SetStatus(hiddenStatus(st.ShowHidden))
	case 'R':
		return st.Reload()
	case '~':
		home, err := d.home()
		if err != nil {
			return apperrors.E(apperrors.KindNavigation, "open home", "", err)
		}
		return st.NavigateTo(home)
	}
	return nil
}

// prompt opens the command line with text already typed.
func (d *Dispatcher) prompt(st *statepkg.AppState, text string) {
	st.EnterMode(statepkg.ModeCommand)
	st.CommandBuffer = text
}

// confirmDelete opens the command line with "delete" typed so nothing is
// removed until Enter. hold keeps the visual range for that command.
func (d *Dispatcher) confirmDelete(st *statepkg.AppState, hold bool) error {
	entries := st.SelectedEntries()
	if len(entries) == 0 {
		return apperrors.Errorf(apperrors.KindOperation, "delete", "nothing to delete")
	}
	st.HeldRange = hold
	d.prompt(st, string(command.Delete))
	st.SetStatus(fmt.Sprintf("press Enter to delete %s", describe(entries)))
	return nil
}

func (d *Dispatcher) deleteSelection(st *statepkg.AppState) error {
	entries := st.SelectedEntries()
	if len(entries) == 0 {
		return apperrors.Errorf(apperrors.KindOperation, "delete", "nothing to delete")
	}
	if err := d.ops.Delete(entries...); err != nil {
		_ = st.Reload()
		return err
	}
	if err := st.Reload(); err != nil {
		return err
	}
	st.InvalidatePreview()
	st.SetStatus(fmt.Sprintf("deleted %s", describe(entries)))
	return nil
}

func (d *Dispatcher) editSelected(st *statepkg.AppState) error {
	entry, ok := st.SelectedEntry()
	if !ok {
		return nil
	}
	if err := d.ops.Edit(entry); err != nil {
		return err
	}
	st.InvalidatePreview()
	return st.Reload()
}

func (d *Dispatcher) yankSelection(st *statepkg.AppState) error {
	entries := st.SelectedEntries()
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	if err := d.ops.Yank(paths...); err != nil {
		return err
	}
	st.SetStatus(fmt.Sprintf("copied %s", describe(entries)))
	return nil
}

func describe(entries []fsutil.Entry) string {
	if len(entries) == 1 {
		return entries[0].Name
	}
	return fmt.Sprintf("%d entries", len(entries))
}

func hiddenStatus(show bool) string {
	if show {
		return "showing hidden files"
	}
	return "hiding hidden files"
}
