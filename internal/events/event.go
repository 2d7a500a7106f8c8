// Package events merges terminal input and a periodic tick into one ordered
// stream consumed by the main loop.
package events

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Event is one of Tick, Key, Mouse or Resize. The set is closed.
type Event interface {
	isEvent()
}

// Tick is published once per tick interval when no input is pending.
type Tick struct {
	At time.Time
}

func (Tick) isEvent() {}

// Key is a keystroke.
type Key struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

func (Key) isEvent() {}

// NewKey builds a Key the way tcell reports it.
func NewKey(k tcell.Key, r rune, mod tcell.ModMask) Key {
	ev := tcell.NewEventKey(k, r, mod)
	return Key{Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}
}

// Mouse is a button press, release or wheel motion.
type Mouse struct {
	X, Y    int
	Buttons tcell.ButtonMask
	Mod     tcell.ModMask
}

func (Mouse) isEvent() {}

// Resize reports the new terminal size.
type Resize struct {
	Width, Height int
}

func (Resize) isEvent() {}

// Classify maps a raw tcell event onto an Event. Kinds the application does not
// handle (paste markers, focus, interrupts) report ok=false.
func Classify(raw tcell.Event) (ev Event, ok bool) {
	switch e := raw.(type) {
	case *tcell.EventKey:
		return Key{Key: e.Key(), Rune: e.Rune(), Mod: e.Modifiers()}, true
	case *tcell.EventMouse:
		x, y := e.Position()
		return Mouse{X: x, Y: y, Buttons: e.Buttons(), Mod: e.Modifiers()}, true
	case *tcell.EventResize:
		w, h := e.Size()
		return Resize{Width: w, Height: h}, true
	default:
		return nil, false
	}
}
