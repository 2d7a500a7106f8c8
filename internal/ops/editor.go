package ops

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/kk-code-lab/mdir/internal/command"
	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	fsutil "github.com/kk-code-lab/mdir/internal/fs"
)

var errNoEditor = errors.New("no editor configured")

// DetectEditor resolves the editor argv: the configured command first, then
// $VISUAL, $EDITOR and a per-platform default.
func DetectEditor(configured string) ([]string, bool) {
	return detectEditor(configured, runtime.GOOS, os.Getenv, exec.LookPath)
}

func detectEditor(configured, goos string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	candidates := []string{configured, getenv("VISUAL"), getenv("EDITOR")}

	for _, candidate := range candidates {
		args, err := command.Split(candidate)
		if err != nil || len(args) == 0 {
			continue
		}
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	var defaults [][]string
	if strings.EqualFold(goos, "windows") {
		defaults = [][]string{
			{"code", "--wait"},
			{"notepad++.exe"},
			{"notepad.exe"},
		}
	} else {
		defaults = [][]string{
			{"vim"},
			{"vi"},
			{"nano"},
		}
	}

	for _, def := range defaults {
		if resolved, ok := resolveExecutable(def[0], lookPath); ok {
			return append([]string{resolved}, def[1:]...), true
		}
	}

	return nil, false
}

func resolveExecutable(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(command.ExpandHome(cmd))
	if err != nil {
		return "", false
	}
	return path, true
}

// Edit opens entry in the editor. The screen is suspended while the editor
// owns the terminal and restored afterwards, whatever the editor's exit status.
func (m *Manager) Edit(entry fsutil.Entry) error {
	if entry.IsParent() {
		return apperrors.E(apperrors.KindOperation, "edit", entry.Path, errParentEntry)
	}
	if entry.IsDir {
		return apperrors.E(apperrors.KindOperation, "edit", entry.Path, errors.New("is a directory"))
	}
	if len(m.editor) == 0 {
		return apperrors.E(apperrors.KindOperation, "edit", entry.Path, errNoEditor)
	}

	args := make([]string, len(m.editor)+1)
	copy(args, m.editor)
	args[len(m.editor)] = entry.Path

	if err := m.runInTerminal(args); err != nil {
		return apperrors.E(apperrors.KindOperation, "edit", entry.Path, err)
	}
	m.logger.Info("edited", "path", entry.Path, "editor", args[0])
	return nil
}

func (m *Manager) runInTerminal(args []string) error {
	cmd := exec.Command(args[0], args[1:]...)

	// Prefer the controlling tty so the editor works even when stdio is redirected.
	var tty *os.File
	if runtime.GOOS != "windows" {
		if f, err := m.openTTY(); err == nil {
			tty = f
			defer func() {
				_ = tty.Close()
			}()
		}
	}
	if tty != nil {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
	} else {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}

	if m.terminal != nil {
		if err := m.terminal.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend screen: %w", err)
		}
	}

	runErr := m.run(cmd)

	if m.terminal != nil {
		if err := m.terminal.Resume(); err != nil {
			return fmt.Errorf("failed to resume screen: %w", err)
		}
		m.terminal.Sync()
	}
	return runErr
}
