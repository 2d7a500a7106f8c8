package ops

import (
	"errors"
	"strings"

	apperrors "github.com/kk-code-lab/mdir/internal/errors"
)

// Yank copies paths to the system clipboard, one per line.
func (m *Manager) Yank(paths ...string) error {
	if len(paths) == 0 {
		return apperrors.E(apperrors.KindOperation, "yank", "", errors.New("nothing selected"))
	}
	if err := m.writeClipboard(strings.Join(paths, "\n")); err != nil {
		return apperrors.E(apperrors.KindOperation, "yank", "", err)
	}
	m.logger.Debug("yanked", "count", len(paths))
	return nil
}
