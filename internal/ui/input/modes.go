package input

import (
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdir/internal/events"
	statepkg "github.com/kk-code-lab/mdir/internal/state"
)

// Insert mode has no editing behaviour yet; it only waits for Escape.
func (d *Dispatcher) handleInsert(k events.Key, st *statepkg.AppState) {
	if isCancel(k) {
		st.EnterMode(statepkg.ModeNormal)
	}
}

func (d *Dispatcher) handleVisual(k events.Key, st *statepkg.AppState) {
	if isCancel(k) || isRune(k, 'v') {
		st.EnterMode(statepkg.ModeNormal)
		return
	}

	switch {
	case k.Key == tcell.KeyDown || isRune(k, 'j'):
		st.MoveSelection(1)
	case k.Key == tcell.KeyUp || isRune(k, 'k'):
		st.MoveSelection(-1)
	case k.Key == tcell.KeyHome || isRune(k, 'g'):
		st.SelectFirst()
	case k.Key == tcell.KeyEnd || isRune(k, 'G'):
		st.SelectLast()
	case isRune(k, 'd'):
		if err := d.confirmDelete(st, true); err != nil {
			st.EnterMode(statepkg.ModeNormal)
			d.report(st, err)
		}
	case isRune(k, 'y'):
		st.SetStatus("")
		err := d.yankSelection(st)
		st.EnterMode(statepkg.ModeNormal)
		d.report(st, err)
	}
}

func (d *Dispatcher) handleCommand(k events.Key, st *statepkg.AppState) bool {
	switch k.Key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		st.EnterMode(statepkg.ModeNormal)
		return false
	case tcell.KeyEnter:
		st.SetStatus("")
		quit, err := d.execute(st.CommandBuffer, st)
		st.EnterMode(statepkg.ModeNormal)
		d.report(st, err)
		return quit
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if st.CommandBuffer == "" {
			st.EnterMode(statepkg.ModeNormal)
			return false
		}
		_, size := utf8.DecodeLastRuneInString(st.CommandBuffer)
		st.CommandBuffer = st.CommandBuffer[:len(st.CommandBuffer)-size]
		return false
	case tcell.KeyCtrlU:
		st.CommandBuffer = ""
		return false
	case tcell.KeyRune:
		if k.Mod&(tcell.ModCtrl|tcell.ModAlt) == 0 && unicode.IsPrint(k.Rune) {
			st.CommandBuffer += string(k.Rune)
		}
		return false
	default:
		return false
	}
}
