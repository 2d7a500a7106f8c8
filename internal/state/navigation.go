package state

import (
	iofs "io/fs"
	"path/filepath"

	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	fsutil "github.com/kk-code-lab/mdir/internal/fs"
)

// MoveSelection moves the cursor by delta, wrapping at both ends.
// An empty listing is left untouched.
func (s *AppState) MoveSelection(delta int) {
	n := len(s.Entries)
	if n == 0 {
		s.SelectedIndex = 0
		return
	}
	s.SelectedIndex = ((s.SelectedIndex+delta)%n + n) % n
}

func (s *AppState) SelectFirst() {
	s.SelectedIndex = 0
}

func (s *AppState) SelectLast() {
	if len(s.Entries) == 0 {
		s.SelectedIndex = 0
		return
	}
	s.SelectedIndex = len(s.Entries) - 1
}

// SelectByName moves the cursor to the entry called name, if present.
func (s *AppState) SelectByName(name string) bool {
	for i, e := range s.Entries {
		if e.Name == name {
			s.SelectedIndex = i
			return true
		}
	}
	return false
}

// NavigateTo replaces the listing with a snapshot of path. On failure the
// previous directory, entries and selection are kept.
func (s *AppState) NavigateTo(path string) error {
	path = filepath.Clean(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	entries, err := fsutil.BuildSnapshot(path, s.snapshotOptions())
	if err != nil {
		return apperrors.E(apperrors.KindNavigation, "open directory", path, rootCause(err))
	}
	s.CurrentPath = path
	s.Entries = entries
	s.SelectedIndex = 0
	s.VisualAnchor = 0
	s.InvalidatePreview()
	return nil
}

// NavigateUp moves to the parent directory. At the filesystem root it does nothing.
func (s *AppState) NavigateUp() error {
	parent := filepath.Dir(s.CurrentPath)
	if parent == s.CurrentPath {
		return nil
	}
	return s.NavigateTo(parent)
}

// NavigateInto enters the selected directory. Files are left alone.
func (s *AppState) NavigateInto() error {
	entry, ok := s.SelectedEntry()
	if !ok || !entry.IsDir {
		return nil
	}
	return s.NavigateTo(entry.Path)
}

// Reload rebuilds the snapshot of the current directory and keeps the cursor on
// the same name when it still exists.
func (s *AppState) Reload() error {
	var selected string
	if entry, ok := s.SelectedEntry(); ok {
		selected = entry.Name
	}
	entries, err := fsutil.BuildSnapshot(s.CurrentPath, s.snapshotOptions())
	if err != nil {
		return err
	}
	prev := s.SelectedIndex
	s.Entries = entries
	if selected == "" || !s.SelectByName(selected) {
		s.SelectedIndex = min(prev, max(len(entries)-1, 0))
	}
	s.VisualAnchor = min(s.VisualAnchor, max(len(entries)-1, 0))
	return nil
}

// ToggleHidden flips dot-file visibility and reloads.
func (s *AppState) ToggleHidden() error {
	s.ShowHidden = !s.ShowHidden
	if err := s.Reload(); err != nil {
		s.ShowHidden = !s.ShowHidden
		return err
	}
	return nil
}

// VisualRange returns the inclusive bounds between the anchor and the cursor.
func (s *AppState) VisualRange() (lo, hi int) {
	lo, hi = s.VisualAnchor, s.SelectedIndex
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// InVisualRange reports whether index i is inside the active visual range.
func (s *AppState) InVisualRange(i int) bool {
	if !s.rangeActive() {
		return false
	}
	lo, hi := s.VisualRange()
	return i >= lo && i <= hi
}

// SelectedEntries returns the visual range in Visual mode or while it is held,
// otherwise the single selected entry. The ".." entry is never included.
func (s *AppState) SelectedEntries() []FileEntry {
	if len(s.Entries) == 0 {
		return nil
	}
	lo, hi := s.SelectedIndex, s.SelectedIndex
	if s.rangeActive() {
		lo, hi = s.VisualRange()
	}
	hi = min(hi, len(s.Entries)-1)
	if lo > hi {
		return nil
	}
	out := make([]FileEntry, 0, hi-lo+1)
	for _, e := range s.Entries[lo : hi+1] {
		if e.IsParent() {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *AppState) rangeActive() bool {
	return s.Mode == ModeVisual || s.HeldRange
}

// rootCause strips the op/path wrappers so the message names the path once.
func rootCause(err error) error {
	var pathErr *iofs.PathError
	if apperrors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
