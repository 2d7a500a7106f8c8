package command

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// Split breaks line into words. Single and double quotes group words and are
// removed; a quote of the other kind inside them is kept literally.
func Split(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false
	quoted := false

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
			current.Reset()
		}
		quoted = false
	}

	for _, r := range line {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			quoted = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			quoted = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	if inSingle || inDouble {
		return nil, errUnterminatedQuote
	}
	flush()
	return args, nil
}

// Quote returns s in a form Split reads back as a single word.
func Quote(s string) string {
	if s != "" && !strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\'' || r == '"'
	}) {
		return s
	}
	if !strings.ContainsRune(s, '"') {
		return `"` + s + `"`
	}
	if !strings.ContainsRune(s, '\'') {
		return "'" + s + "'"
	}
	// Both quote kinds: close the single-quoted run around each ', emit it
	// double-quoted, and reopen. Split joins adjacent quoted runs.
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}
