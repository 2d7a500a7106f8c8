// Package command parses the ":" command line.
package command

import (
	"strings"

	apperrors "github.com/kk-code-lab/mdir/internal/errors"
)

// Name identifies a command after alias resolution.
type Name string

const (
	Quit   Name = "quit"
	Cd     Name = "cd"
	Rename Name = "rename"
	New    Name = "new"
	Mkdir  Name = "mkdir"
	Delete Name = "delete"
	Edit   Name = "edit"
	Find   Name = "find"
	Hidden Name = "hidden"
	Reload Name = "reload"
)

type definition struct {
	name    Name
	minArgs int
	maxArgs int // -1 for unlimited
}

var commands = map[string]definition{
	"q":       {Quit, 0, 0},
	"q!":      {Quit, 0, 0},
	"quit":    {Quit, 0, 0},
	"exit":    {Quit, 0, 0},
	"cd":      {Cd, 0, 1},
	"rename":  {Rename, 1, 1},
	"mv":      {Rename, 1, 1},
	"new":     {New, 1, 1},
	"touch":   {New, 1, 1},
	"mkdir":   {Mkdir, 1, 1},
	"delete":  {Delete, 0, 0},
	"rm":      {Delete, 0, 0},
	"edit":    {Edit, 0, 0},
	"e":       {Edit, 0, 0},
	"find":    {Find, 1, -1},
	"f":       {Find, 1, -1},
	"hidden":  {Hidden, 0, 0},
	"reload":  {Reload, 0, 0},
	"refresh": {Reload, 0, 0},
}

// Command is a parsed command line.
type Command struct {
	Name Name
	Args []string
}

// Arg returns the arguments joined by single spaces, or "" when there are none.
func (c Command) Arg() string {
	return strings.Join(c.Args, " ")
}

// Parse reads a command line such as `rename "my file.txt"`. An empty line
// yields the zero Command and no error.
func Parse(line string) (Command, error) {
	words, err := Split(line)
	if err != nil {
		return Command{}, apperrors.E(apperrors.KindCommand, "parse command", "", err)
	}
	if len(words) == 0 {
		return Command{}, nil
	}

	s, ok := commands[words[0]]
	if !ok {
		return Command{}, apperrors.Errorf(apperrors.KindCommand, "parse command", "unknown command %q", words[0])
	}
	args := words[1:]
	if len(args) < s.minArgs || (s.maxArgs >= 0 && len(args) > s.maxArgs) {
		return Command{}, apperrors.Errorf(apperrors.KindCommand, "parse command", "%s: %s", s.name, usage(s))
	}

	if s.name == Cd && len(args) == 1 {
		args[0] = ExpandHome(args[0])
	}
	return Command{Name: s.name, Args: args}, nil
}

func usage(s definition) string {
	switch {
	case s.maxArgs == 0:
		return "takes no arguments"
	case s.minArgs == 0:
		return "takes at most one argument"
	case s.maxArgs < 0:
		return "needs an argument"
	default:
		return "needs exactly one argument"
	}
}
