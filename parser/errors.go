package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrCauseAlreadySet is returned by ParseError.SetCause when the
	// error already carries a cause.
	ErrCauseAlreadySet = errors.New("parse error already has a cause")
	// ErrSelfCause is returned by ParseError.SetCause when an error is
	// offered as its own cause.
	ErrSelfCause = errors.New("parse error cannot be its own cause")
)

// ConfigError reports a problem with a feature or property access:
// an identifier that was never registered as recognized, a value of
// the wrong shape, or a call that is not legal in the current parse
// state.
type ConfigError struct {
	// ID is the feature or property identifier involved, if any.
	ID     string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.ID == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.ID)
}

func errNotRecognized(kind, id string) *ConfigError {
	return &ConfigError{ID: id, Reason: kind + " not recognized"}
}

// ParseError describes a condition encountered while scanning or
// validating markup. It carries the location the condition was seen at
// and, optionally, a wrapped cause (for example the I/O error that
// ended a read).
type ParseError struct {
	Msg    string
	Line   int
	Col    int
	Offset int
	cause  error
}

// NewParseError creates a parse error located at loc.
func NewParseError(msg string, loc *Locator) *ParseError {
	e := &ParseError{Msg: msg}
	if loc != nil {
		e.Line = loc.Line
		e.Col = loc.Col
		e.Offset = loc.Offset
	}
	return e
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Line > 0 {
		msg = fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
	}
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

// Cause returns the wrapped cause, or nil.
func (e *ParseError) Cause() error {
	return e.cause
}

// Unwrap makes the cause visible to errors.Is and errors.As.
func (e *ParseError) Unwrap() error {
	return e.cause
}

// SetCause records the underlying cause of this error. The cause can be
// set at most once; a second call fails with ErrCauseAlreadySet, and
// offering the error as its own cause fails with ErrSelfCause.
func (e *ParseError) SetCause(cause error) error {
	if e.cause != nil {
		return ErrCauseAlreadySet
	}
	if cause == error(e) {
		return ErrSelfCause
	}
	e.cause = cause
	return nil
}
