// Package errors defines the typed error kinds shared across mdir. Every
// recoverable failure surfaced to the user carries a Kind so the main loop and
// tests can tell failures apart without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported from the standard errors package for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
)

// Kind classifies an error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindChannelClosed means the event producer terminated. Fatal for the main loop.
	KindChannelClosed
	// KindIO covers filesystem reads that failed (unreadable directory, missing file).
	KindIO
	// KindNavigation is a failed directory change; the previous snapshot is kept.
	KindNavigation
	// KindPreview is a failed preview read. Never shown as an error message.
	KindPreview
	// KindOperation is a failed collaborator action (delete, rename, create, edit, yank).
	KindOperation
	// KindCommand is a command line that could not be parsed or executed.
	KindCommand
	// KindConfig is an invalid configuration value or file.
	KindConfig
)

// String returns a short label used in the status line and logs.
func (k Kind) String() string {
	switch k {
	case KindChannelClosed:
		return "channel closed"
	case KindIO:
		return "io"
	case KindNavigation:
		return "navigation"
	case KindPreview:
		return "preview"
	case KindOperation:
		return "operation"
	case KindCommand:
		return "command"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ErrChannelClosed is returned by the event multiplexer once its producer has exited.
var ErrChannelClosed = &Error{Kind: KindChannelClosed, Op: "next event", Err: errors.New("channel closed")}

// Error is the base error type for mdir.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// E builds an *Error.
func E(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Errorf builds an *Error without a path from a formatted message.
func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s %s", e.Op, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrChannelClosed)
// holds for every channel-closed error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == e.Op
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
