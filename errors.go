package mesi4sim

import (
	"errors"
	"fmt"
)

// Error represents a structured simulator error with context.
type Error struct {
	Op    string // operation that failed, e.g. "LoadTrace", "ParseConfig"
	Core  int    // core index the error pertains to (-1 if not applicable)
	Code  ErrorCode
	Msg   string
	Inner error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.Core >= 0 {
		parts = append(parts, fmt.Sprintf("core=%d", e.Core))
	}

	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}

	if len(parts) > 0 {
		return fmt.Sprintf("mesi4sim: %s (%s)", msg, parts[0])
	}
	return fmt.Sprintf("mesi4sim: %s", msg)
}

// Unwrap returns the wrapped error for errors.Is/errors.As support.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is supports errors.Is comparison against another *Error by code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if te, ok := target.(*Error); ok {
		return e.Code == te.Code
	}
	return false
}

// ErrorCode represents the four error kinds from the error handling design:
// configuration, I/O, parse, and internal invariant violation.
type ErrorCode string

const (
	ErrCodeConfig   ErrorCode = "configuration error"
	ErrCodeIO       ErrorCode = "I/O error"
	ErrCodeParse    ErrorCode = "parse error"
	ErrCodeInternal ErrorCode = "internal invariant violation"
)

// NewConfigError reports a missing or invalid CLI/config argument.
func NewConfigError(op, msg string) *Error {
	return &Error{Op: op, Core: -1, Code: ErrCodeConfig, Msg: msg}
}

// NewIOError reports a failure to open a trace file or create the output file.
func NewIOError(op string, inner error) *Error {
	return &Error{Op: op, Core: -1, Code: ErrCodeIO, Msg: inner.Error(), Inner: inner}
}

// NewParseError reports a malformed trace line, with file and line context in msg.
func NewParseError(op, msg string) *Error {
	return &Error{Op: op, Core: -1, Code: ErrCodeParse, Msg: msg}
}

// NewCoreParseError is NewParseError with the offending core attached.
func NewCoreParseError(op string, core int, msg string) *Error {
	return &Error{Op: op, Core: core, Code: ErrCodeParse, Msg: msg}
}

// NewInternalError reports a broken invariant: state the core model
// guarantees never to reach. It is not recoverable.
func NewInternalError(op, msg string) *Error {
	return &Error{Op: op, Core: -1, Code: ErrCodeInternal, Msg: msg}
}

// WrapError wraps an existing error with simulator context, preserving its
// code if it is already a structured *Error.
func WrapError(op string, inner error) *Error {
	if inner == nil {
		return nil
	}
	var se *Error
	if errors.As(inner, &se) {
		return &Error{Op: op, Core: se.Core, Code: se.Code, Msg: se.Msg, Inner: se.Inner}
	}
	return &Error{Op: op, Core: -1, Code: ErrCodeIO, Msg: inner.Error(), Inner: inner}
}

// IsCode reports whether err is a structured *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
