// Package errors provides the structured error taxonomy shared by every
// Shebe core component and surfaced verbatim across the tool-call boundary.
package errors

import "fmt"

// Code identifies one of the error kinds a core operation can return.
type Code string

const (
	InvalidArgument       Code = "InvalidArgument"
	NotFound              Code = "NotFound"
	AlreadyExists         Code = "AlreadyExists"
	SchemaMismatch        Code = "SchemaMismatch"
	RepositoryPathMissing Code = "RepositoryPathMissing"
	ConfigUnchanged       Code = "ConfigUnchanged"
	BinaryFile            Code = "BinaryFile"
	FileNotFound          Code = "FileNotFound"
	Timeout               Code = "Timeout"
	Cancelled             Code = "Cancelled"
	Internal              Code = "Internal"
)

// Error is the structured error type returned by every core component.
// It carries enough context for the tool layer to fill out a response
// envelope without re-deriving a message from scratch.
type Error struct {
	Code       Code
	Message    string
	Suggestion string
	Cause      error
}

func (e *Error) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("[%s] %s (%s)", e.Code, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match two *Error values by Code alone, mirroring how
// callers compare against sentinel codes rather than exact messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates an *Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an *Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error from an existing error, preserving it as Cause.
func Wrap(code Code, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: err.Error(), Cause: err}
}

// Wrapf creates an *Error from an existing error with a formatted message,
// preserving the original as Cause.
func Wrapf(code Code, err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithSuggestion attaches an actionable hint and returns the error for
// chaining at the call site.
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestion = suggestion
	return e
}

// CodeOf extracts the Code from err if it is (or wraps) an *Error.
// Returns Internal for any other error, and "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var se *Error
	if ok := asError(err, &se); ok {
		return se.Code
	}
	return Internal
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
