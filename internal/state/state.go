package state

import (
	"time"

	"github.com/gobwas/glob"
	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	fsutil "github.com/kk-code-lab/mdir/internal/fs"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// Mode is the input mode the dispatcher routes keys through.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeVisual
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	case ModeVisual:
		return "VISUAL"
	default:
		return "UNKNOWN"
	}
}

// AppState is the single source of truth. Only the main loop touches it.
type AppState struct {
	// Navigation & filesystem
	CurrentPath string
	Entries     []FileEntry

	// Selection
	SelectedIndex int
	VisualAnchor  int
	// HeldRange keeps the visual range selected while a command prompt
	// opened from Visual mode is pending.
	HeldRange bool

	// Input
	Mode          Mode
	CommandBuffer string

	// Messages
	ErrorMessage  string
	ErrorKind     apperrors.Kind
	StatusMessage string

	// Preview
	Preview     string
	PreviewPath string
	PreviewType string
	LastPreview time.Time

	// Listing options
	ShowHidden   bool
	HidePatterns []glob.Glob

	ScreenWidth  int
	ScreenHeight int
}

// New builds the initial state for path. It fails if the directory cannot be read.
func New(path string, showHidden bool, hide []glob.Glob) (*AppState, error) {
	st := &AppState{
		ShowHidden:   showHidden,
		HidePatterns: hide,
	}
	if err := st.NavigateTo(path); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *AppState) snapshotOptions() fsutil.SnapshotOptions {
	return fsutil.SnapshotOptions{ShowHidden: s.ShowHidden, Hide: s.HidePatterns}
}

// SelectedEntry returns the entry under the cursor.
func (s *AppState) SelectedEntry() (FileEntry, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Entries) {
		return FileEntry{}, false
	}
	return s.Entries[s.SelectedIndex], true
}

// SetError records err for the status bar.
func (s *AppState) SetError(err error) {
	if err == nil {
		s.ClearError()
		return
	}
	s.ErrorMessage = err.Error()
	s.ErrorKind = apperrors.KindOf(err)
	s.StatusMessage = ""
}

func (s *AppState) ClearError() {
	s.ErrorMessage = ""
	s.ErrorKind = apperrors.KindUnknown
}

func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
}

// EnterMode switches the input mode. Entering Visual anchors the range at the
// cursor; leaving Command drops whatever was typed; returning to Normal
// releases a held range.
func (s *AppState) EnterMode(m Mode) {
	if s.Mode == ModeCommand && m != ModeCommand {
		s.CommandBuffer = ""
	}
	if m == ModeNormal {
		s.HeldRange = false
	}
	if m == ModeVisual {
		s.VisualAnchor = s.SelectedIndex
	}
	s.Mode = m
}

// InvalidatePreview forces the next refresh to read regardless of debounce.
func (s *AppState) InvalidatePreview() {
	s.LastPreview = time.Time{}
}
