package state

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesNamed(names ...string) []FileEntry {
	out := make([]FileEntry, len(names))
	for i, n := range names {
		out[i] = FileEntry{Name: n, Path: "/test/" + n}
	}
	return out
}

func newTestTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "inner.txt"), []byte("inner"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o644))
	return dir
}

func TestMoveSelectionWraps(t *testing.T) {
	st := &AppState{Entries: entriesNamed("a", "b", "c")}

	st.MoveSelection(-1)
	assert.Equal(t, 2, st.SelectedIndex)
	st.MoveSelection(1)
	assert.Equal(t, 0, st.SelectedIndex)
	st.MoveSelection(7)
	assert.Equal(t, 1, st.SelectedIndex)
}

func TestMoveSelectionUpThenDownIsIdentity(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for start := 0; start < n; start++ {
			st := &AppState{Entries: entriesNamed("a", "b", "c", "d", "e")[:n], SelectedIndex: start}
			st.MoveSelection(-1)
			st.MoveSelection(1)
			assert.Equal(t, start, st.SelectedIndex, "n=%d start=%d", n, start)

			st.MoveSelection(1)
			st.MoveSelection(-1)
			assert.Equal(t, start, st.SelectedIndex, "n=%d start=%d", n, start)
		}
	}
}

func TestMoveSelectionOnEmptyListingIsNoop(t *testing.T) {
	st := &AppState{}
	st.MoveSelection(1)
	assert.Equal(t, 0, st.SelectedIndex)
	st.MoveSelection(-1)
	assert.Equal(t, 0, st.SelectedIndex)
	_, ok := st.SelectedEntry()
	assert.False(t, ok)
}

func TestNavigateIntoAndUp(t *testing.T) {
	dir := newTestTree(t)
	st, err := New(dir, false, nil)
	require.NoError(t, err)
	require.Equal(t, dir, st.CurrentPath)

	require.True(t, st.SelectByName("sub"))
	require.NoError(t, st.NavigateInto())
	assert.Equal(t, filepath.Join(dir, "sub"), st.CurrentPath)
	assert.Equal(t, 0, st.SelectedIndex)
	assert.Equal(t, "..", st.Entries[0].Name)
	assert.Equal(t, "inner.txt", st.Entries[1].Name)

	require.NoError(t, st.NavigateUp())
	assert.Equal(t, dir, st.CurrentPath)
}

func TestNavigateIntoParentEntry(t *testing.T) {
	dir := newTestTree(t)
	st, err := New(filepath.Join(dir, "sub"), false, nil)
	require.NoError(t, err)

	require.NoError(t, st.NavigateInto())
	assert.Equal(t, dir, st.CurrentPath)
}

func TestNavigateIntoFileIsNoop(t *testing.T) {
	dir := newTestTree(t)
	st, err := New(dir, false, nil)
	require.NoError(t, err)
	require.True(t, st.SelectByName("notes.txt"))
	before := st.SelectedIndex

	require.NoError(t, st.NavigateInto())
	assert.Equal(t, dir, st.CurrentPath)
	assert.Equal(t, before, st.SelectedIndex)
}

func TestNavigateUpAtRootIsNoop(t *testing.T) {
	root := filepath.VolumeName(os.TempDir()) + string(filepath.Separator)
	st := &AppState{CurrentPath: root, Entries: entriesNamed("x"), SelectedIndex: 0}
	require.NoError(t, st.NavigateUp())
	assert.Equal(t, root, st.CurrentPath)
	assert.Equal(t, []FileEntry(entriesNamed("x")), st.Entries)
}

func TestNavigateToFailureKeepsState(t *testing.T) {
	dir := newTestTree(t)
	st, err := New(dir, false, nil)
	require.NoError(t, err)
	st.MoveSelection(1)
	entries := st.Entries
	selected := st.SelectedIndex

	err = st.NavigateTo(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNavigation, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "missing")
	assert.Equal(t, dir, st.CurrentPath)
	assert.Equal(t, entries, st.Entries)
	assert.Equal(t, selected, st.SelectedIndex)
}

func TestNewFailsOnUnreadableDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), true, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNavigation, apperrors.KindOf(err))
}

func TestReloadKeepsSelectionByName(t *testing.T) {
	dir := newTestTree(t)
	st, err := New(dir, false, nil)
	require.NoError(t, err)
	require.True(t, st.SelectByName("notes.txt"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, st.Reload())

	entry, ok := st.SelectedEntry()
	require.True(t, ok)
	assert.Equal(t, "notes.txt", entry.Name)
}

func TestReloadClampsWhenSelectionDisappears(t *testing.T) {
	dir := newTestTree(t)
	st, err := New(dir, false, nil)
	require.NoError(t, err)
	require.True(t, st.SelectByName("notes.txt"))

	require.NoError(t, os.Remove(filepath.Join(dir, "notes.txt")))
	require.NoError(t, st.Reload())

	assert.Less(t, st.SelectedIndex, len(st.Entries))
}

func TestToggleHidden(t *testing.T) {
	dir := newTestTree(t)
	st, err := New(dir, false, nil)
	require.NoError(t, err)
	assert.False(t, st.SelectByName(".hidden"))

	require.NoError(t, st.ToggleHidden())
	assert.True(t, st.ShowHidden)
	assert.True(t, st.SelectByName(".hidden"))
}

func TestSelectedEntriesSkipsParentInVisualRange(t *testing.T) {
	st := &AppState{Entries: []FileEntry{
		{Name: ".."},
		{Name: "a"},
		{Name: "b"},
		{Name: "c"},
	}}
	st.EnterMode(ModeVisual)
	st.MoveSelection(2)

	got := st.SelectedEntries()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
	assert.True(t, st.InVisualRange(0))
	assert.False(t, st.InVisualRange(3))

	st.EnterMode(ModeNormal)
	assert.False(t, st.InVisualRange(1))
}

func TestHeldRangeSurvivesCommandMode(t *testing.T) {
	st := &AppState{Entries: entriesNamed("a", "b", "c")}
	st.EnterMode(ModeVisual)
	st.MoveSelection(1)
	st.HeldRange = true
	st.EnterMode(ModeCommand)

	got := st.SelectedEntries()
	require.Len(t, got, 2)
	assert.True(t, st.InVisualRange(1))

	st.EnterMode(ModeNormal)
	assert.False(t, st.HeldRange)
	assert.Len(t, st.SelectedEntries(), 1)
}

func TestSelectedEntriesAfterListingShrinks(t *testing.T) {
	st := &AppState{Entries: entriesNamed("a", "b", "c", "d")}
	st.SelectLast()
	st.EnterMode(ModeVisual)
	st.MoveSelection(-1)
	// Both ends of the range now lie past the shortened listing.
	st.Entries = st.Entries[:2]

	if got := st.SelectedEntries(); len(got) != 0 {
		t.Fatalf("SelectedEntries() = %v, want none for a range past the end", got)
	}
}

func TestEnterModeLeavingCommandClearsBuffer(t *testing.T) {
	st := &AppState{}
	st.EnterMode(ModeCommand)
	st.CommandBuffer = "cd /tmp"
	st.EnterMode(ModeNormal)
	assert.Empty(t, st.CommandBuffer)
	assert.Equal(t, "NORMAL", st.Mode.String())
}

func TestSetErrorRecordsKind(t *testing.T) {
	st := &AppState{StatusMessage: "old"}
	st.SetError(apperrors.Errorf(apperrors.KindOperation, "delete", "refusing"))
	assert.Equal(t, "delete: refusing", st.ErrorMessage)
	assert.Equal(t, apperrors.KindOperation, st.ErrorKind)
	assert.Empty(t, st.StatusMessage)

	st.ClearError()
	assert.Empty(t, st.ErrorMessage)
	assert.Equal(t, apperrors.KindUnknown, st.ErrorKind)
}
