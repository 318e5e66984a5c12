package yeyo

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrorKind classifies the failures yeyo reports.
type ErrorKind int

const (
	// ParseError indicates a malformed version string.
	ParseError ErrorKind = iota + 1
	// InvalidStateError indicates a transition that the current version does not allow,
	// e.g. finalizing a version that has no prerelease.
	InvalidStateError
	// DuplicateFileError indicates a path that is already tracked.
	DuplicateFileError
	// NotFoundError indicates a path that is not tracked.
	NotFoundError
	// NoMatchError indicates a tracked file without a line matching its template.
	NoMatchError
	// IOError indicates a tracked file that could not be read or written.
	IOError
	// DirtyRepoError indicates uncommitted changes outside the tracked files.
	DirtyRepoError
	// ConfigError indicates a config document that cannot be loaded or saved.
	ConfigError
	// GitError indicates a failed git invocation.
	GitError
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "parse error"
	case InvalidStateError:
		return "invalid state"
	case DuplicateFileError:
		return "duplicate file"
	case NotFoundError:
		return "not found"
	case NoMatchError:
		return "no match"
	case IOError:
		return "io error"
	case DirtyRepoError:
		return "dirty repository"
	case ConfigError:
		return "config error"
	case GitError:
		return "git error"
	default:
		return "unknown error"
	}
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrParse         = &Error{Kind: ParseError}
	ErrInvalidState  = &Error{Kind: InvalidStateError}
	ErrDuplicateFile = &Error{Kind: DuplicateFileError}
	ErrNotFound      = &Error{Kind: NotFoundError}
	ErrNoMatch       = &Error{Kind: NoMatchError}
	ErrIO            = &Error{Kind: IOError}
	ErrDirtyRepo     = &Error{Kind: DirtyRepoError}
	ErrConfig        = &Error{Kind: ConfigError}
	ErrGit           = &Error{Kind: GitError}
)

// Error is the error type returned by the yeyo library.
type Error struct {
	// Kind is the error classification.
	Kind ErrorKind
	// Message describes what went wrong.
	Message string
	// Path is the file the error relates to, if any.
	Path string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.Kind == t.Kind
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newFileError(kind ErrorKind, path, message string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Message: message, Cause: cause}
}

// Errors flattens an aggregated error into its parts.
func Errors(err error) []error {
	return multierr.Errors(err)
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
