package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	apperrors "github.com/kk-code-lab/mdir/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// SnapshotOptions controls which entries a snapshot keeps.
type SnapshotOptions struct {
	ShowHidden bool
	Hide       []glob.Glob
}

// CompilePatterns compiles name globs such as "*.pyc" or ".git".
func CompilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func (o SnapshotOptions) excluded(e Entry) bool {
	if !o.ShowHidden && e.IsHidden() {
		return true
	}
	for _, g := range o.Hide {
		if g.Match(e.Name) {
			return true
		}
	}
	return false
}

// BuildSnapshot lists one level of dirPath. The synthetic ".." entry comes first
// whenever dirPath has a parent; the rest are directories before files, each
// group ordered by case-insensitive name.
func BuildSnapshot(dirPath string, opts SnapshotOptions) ([]Entry, error) {
	dirPath = filepath.Clean(dirPath)
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, apperrors.E(apperrors.KindIO, "read directory", dirPath, err)
	}

	entries := make([]Entry, 0, len(dirEntries)+1)
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}

		rawName := de.Name()
		fullPath := filepath.Join(dirPath, rawName)
		if shouldHideFromListing(fullPath, rawName) {
			continue
		}

		isDir := de.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0
		if isSymlink {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		entry := Entry{
			Name:      norm.NFC.String(rawName),
			Path:      fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		}
		if opts.excluded(entry) {
			continue
		}
		entries = append(entries, entry)
	}

	SortEntries(entries)

	if parent := filepath.Dir(dirPath); parent != dirPath {
		entries = append([]Entry{{Name: ParentName, Path: parent, IsDir: true}}, entries...)
	}
	return entries, nil
}

// SortEntries orders entries in place: ".." first, directories before files,
// then by case-folded name with the raw name as a tie-breaker.
func SortEntries(entries []Entry) {
	fold := cases.Fold()
	keys := make(map[string]string, len(entries))
	key := func(name string) string {
		k, ok := keys[name]
		if !ok {
			k = fold.String(name)
			keys[name] = k
		}
		return k
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsParent() != b.IsParent() {
			return a.IsParent()
		}
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		ka, kb := key(a.Name), key(b.Name)
		if ka != kb {
			return ka < kb
		}
		return a.Name < b.Name
	})
}
