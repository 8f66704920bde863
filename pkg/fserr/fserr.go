// Package fserr defines the error kinds returned by the home directory
// resolver and the directory lister.
package fserr

import "errors"

// Kind classifies a failure of one of the introspection operations
type Kind string

const (
	// EnvironmentUnavailable means no home directory variable was set
	EnvironmentUnavailable Kind = "EnvironmentUnavailable"
	// DirectoryOpenFailed means the path could not be opened for enumeration
	DirectoryOpenFailed Kind = "DirectoryOpenFailed"
	// EntryReadFailed means enumeration began but an entry could not be read
	EntryReadFailed Kind = "EntryReadFailed"
)

// HomeUnavailableMessage is the fixed text reported for EnvironmentUnavailable
const HomeUnavailableMessage = "could not determine home directory"

// Sentinels for use with errors.Is. They match any *Error of the same kind.
var (
	ErrEnvironmentUnavailable = &Error{Kind: EnvironmentUnavailable}
	ErrDirectoryOpenFailed    = &Error{Kind: DirectoryOpenFailed}
	ErrEntryReadFailed        = &Error{Kind: EntryReadFailed}
)

// Error is a classified failure. Path is empty for EnvironmentUnavailable.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// New wraps err with the given kind
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Error returns the user-facing text. For filesystem failures this is the
// underlying error's text, unchanged.
func (e *Error) Error() string {
	if e.Kind == EnvironmentUnavailable {
		return HomeUnavailableMessage
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or "" when err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
