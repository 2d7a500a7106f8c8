package input

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/mdir/internal/command"
	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	statepkg "github.com/kk-code-lab/mdir/internal/state"
	"github.com/sahilm/fuzzy"
)

// execute runs a command line typed after ":".
func (d *Dispatcher) execute(line string, st *statepkg.AppState) (bool, error) {
	cmd, err := command.Parse(line)
	if err != nil {
		return false, err
	}
	d.logger.Debug("command", "name", cmd.Name, "args", cmd.Args)

	switch cmd.Name {
	case "":
		return false, nil
	case command.Quit:
		return true, nil
	case command.Cd:
		return false, d.changeDir(cmd, st)
	case command.Rename:
		return false, d.rename(cmd.Args[0], st)
	case command.New:
		name := cmd.Args[0]
		if dir, ok := strings.CutSuffix(name, "/"); ok {
			return false, d.create(dir, st, d.ops.Mkdir)
		}
		return false, d.create(name, st, d.ops.Create)
	case command.Mkdir:
		return false, d.create(strings.TrimSuffix(cmd.Args[0], "/"), st, d.ops.Mkdir)
	case command.Delete:
		return false, d.deleteSelection(st)
	case command.Edit:
		return false, d.editSelected(st)
	case command.Find:
		return false, findEntry(cmd.Arg(), st)
	case command.Hidden:
		if err := st.ToggleHidden(); err != nil {
			return false, err
		}
		st.SetStatus(hiddenStatus(st.ShowHidden))
		return false, nil
	case command.Reload:
		st.InvalidatePreview()
		return false, st.Reload()
	default:
		return false, apperrors.Errorf(apperrors.KindCommand, "run command", "unsupported command %q", cmd.Name)
	}
}

func (d *Dispatcher) changeDir(cmd command.Command, st *statepkg.AppState) error {
	var target string
	if len(cmd.Args) == 0 {
		home, err := d.home()
		if err != nil {
			return apperrors.E(apperrors.KindNavigation, "open home", "", err)
		}
		target = home
	} else {
		target = cmd.Args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(st.CurrentPath, target)
		}
	}
	return st.NavigateTo(target)
}

func (d *Dispatcher) rename(newName string, st *statepkg.AppState) error {
	entry, ok := st.SelectedEntry()
	if !ok || entry.IsParent() {
		return apperrors.Errorf(apperrors.KindOperation, "rename", "nothing to rename")
	}
	if err := d.ops.Rename(entry, newName); err != nil {
		return err
	}
	if err := st.Reload(); err != nil {
		return err
	}
	st.SelectByName(newName)
	st.InvalidatePreview()
	st.SetStatus(fmt.Sprintf("renamed %s to %s", entry.Name, newName))
	return nil
}

func (d *Dispatcher) create(name string, st *statepkg.AppState, op func(dir, name string) error) error {
	if err := op(st.CurrentPath, name); err != nil {
		return err
	}
	if err := st.Reload(); err != nil {
		return err
	}
	st.SelectByName(name)
	st.InvalidatePreview()
	st.SetStatus("created " + name)
	return nil
}

// findEntry moves the cursor to the best fuzzy match for query.
func findEntry(query string, st *statepkg.AppState) error {
	names := make([]string, len(st.Entries))
	for i, e := range st.Entries {
		names[i] = e.Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return apperrors.Errorf(apperrors.KindCommand, "find", "no match for %q", query)
	}
	st.SelectedIndex = matches[0].Index
	return nil
}
