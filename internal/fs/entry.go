package fs

import (
	"os"
	"time"
)

// ParentName is the display name of the synthetic parent entry.
const ParentName = ".."

// Entry represents a single file or directory on disk. Entries are values and
// are never mutated once a snapshot is built.
type Entry struct {
	Name      string
	Path      string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsParent reports whether the entry is the synthetic ".." entry.
func (e Entry) IsParent() bool {
	return e.Name == ParentName
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	if e.IsParent() {
		return false
	}
	return IsHidden(e.Path, e.Name)
}
