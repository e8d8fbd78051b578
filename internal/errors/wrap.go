// Package errors carries error types that keep internal detail and
// user-facing wording separate.
package errors

import (
	"fmt"
)

// WrappedError pairs the internal failure with a message safe to show in a
// chat reply. The Error string carries the module and operation so log lines
// point at the failing call site.
type WrappedError struct {
	Operation   string // e.g. "lookup_faculty", "get_timetable"
	Module      string // e.g. "storage", "dialogue"
	Cause       error
	UserMessage string
}

func (e *WrappedError) Error() string {
	return fmt.Sprintf("[%s:%s] %s: %v", e.Module, e.Operation, e.UserMessage, e.Cause)
}

func (e *WrappedError) Unwrap() error {
	return e.Cause
}

// ErrorWrapper stamps a fixed module and operation onto every error it wraps,
// so call sites in one code path do not repeat themselves.
type ErrorWrapper struct {
	operation string
	module    string
}

// NewWrapper returns a wrapper bound to module and operation.
func NewWrapper(module, operation string) *ErrorWrapper {
	return &ErrorWrapper{
		module:    module,
		operation: operation,
	}
}

// Wrap attaches the wrapper's context and a user message to err. A nil err
// stays nil.
func (w *ErrorWrapper) Wrap(err error, userMessage string) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Operation:   w.operation,
		Module:      w.module,
		Cause:       err,
		UserMessage: userMessage,
	}
}

// Wrapf is Wrap with a formatted user message.
func (w *ErrorWrapper) Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Operation:   w.operation,
		Module:      w.module,
		Cause:       err,
		UserMessage: fmt.Sprintf(format, args...),
	}
}

// GetUserMessage extracts the user-facing message, falling back to the plain
// error string for errors that are not WrappedError.
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	if wrapped, ok := err.(*WrappedError); ok {
		return wrapped.UserMessage
	}
	return err.Error()
}
