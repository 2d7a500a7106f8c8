package ops

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	fsutil "github.com/kk-code-lab/mdir/internal/fs"
)

var errParentEntry = errors.New("refusing to operate on ..")

// ValidateName rejects names that are empty, "." or "..", or contain a path separator.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("name is empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid name %q", name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("name %q contains a path separator", name)
	}
	return nil
}

// Delete removes each entry, directories recursively. It stops at the first failure.
func (m *Manager) Delete(entries ...fsutil.Entry) error {
	for _, e := range entries {
		if e.IsParent() {
			return apperrors.E(apperrors.KindOperation, "delete", e.Path, errParentEntry)
		}
	}
	for _, e := range entries {
		if err := os.RemoveAll(e.Path); err != nil {
			return apperrors.E(apperrors.KindOperation, "delete", e.Path, unwrapPath(err))
		}
		m.logger.Info("deleted", "path", e.Path)
	}
	return nil
}

// Rename renames entry within its directory. An existing target is never overwritten.
func (m *Manager) Rename(entry fsutil.Entry, newName string) error {
	if entry.IsParent() {
		return apperrors.E(apperrors.KindOperation, "rename", entry.Path, errParentEntry)
	}
	if err := ValidateName(newName); err != nil {
		return apperrors.E(apperrors.KindOperation, "rename", entry.Path, err)
	}
	target := filepath.Join(filepath.Dir(entry.Path), newName)
	if target == entry.Path {
		return nil
	}
	if _, err := os.Lstat(target); err == nil {
		return apperrors.E(apperrors.KindOperation, "rename", target, iofs.ErrExist)
	}
	if err := os.Rename(entry.Path, target); err != nil {
		return apperrors.E(apperrors.KindOperation, "rename", entry.Path, unwrapLink(err))
	}
	m.logger.Info("renamed", "from", entry.Path, "to", target)
	return nil
}

// Create makes an empty file name inside dir. It fails if the name is taken.
func (m *Manager) Create(dir, name string) error {
	if err := ValidateName(name); err != nil {
		return apperrors.E(apperrors.KindOperation, "create", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return apperrors.E(apperrors.KindOperation, "create", path, unwrapPath(err))
	}
	if err := f.Close(); err != nil {
		return apperrors.E(apperrors.KindOperation, "create", path, err)
	}
	m.logger.Info("created", "path", path)
	return nil
}

// Mkdir makes the directory name inside dir.
func (m *Manager) Mkdir(dir, name string) error {
	if err := ValidateName(name); err != nil {
		return apperrors.E(apperrors.KindOperation, "mkdir", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.Mkdir(path, 0o755); err != nil {
		return apperrors.E(apperrors.KindOperation, "mkdir", path, unwrapPath(err))
	}
	m.logger.Info("created directory", "path", path)
	return nil
}

func unwrapPath(err error) error {
	var pathErr *iofs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

func unwrapLink(err error) error {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	return err
}
