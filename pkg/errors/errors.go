// Package errors provides structured error types for flowlayout.
//
// Every [Error] carries a [Code]; every code belongs to a [Kind] that tells
// the CLI which exit status to use and the HTTP API which status to answer
// with:
//   - INVALID_*: [KindClient], the caller sent bad input
//   - NOT_FOUND, FILE_NOT_FOUND: [KindNotFound]
//   - UNSUPPORTED: [KindUnsupported]
//   - INTERNAL_ERROR and unstructured errors: [KindInternal]
//
// Degenerate layout settings (negative line padding, non-positive max lines)
// and oversized boxes are not errors; the engine normalises them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidBox, "box %d: negative width", i)
//	if errors.Is(err, errors.ErrCodeInvalidBox) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidAdapter  Code = "INVALID_ADAPTER"
	ErrCodeInvalidBox      Code = "INVALID_BOX"
	ErrCodeInvalidFrame    Code = "INVALID_FRAME"
	ErrCodeInvalidGravity  Code = "INVALID_GRAVITY"
	ErrCodeInvalidMode     Code = "INVALID_MODE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Kind classifies codes by who is at fault.
type Kind int

const (
	KindInternal Kind = iota
	KindClient
	KindNotFound
	KindUnsupported
)

var codeKinds = map[Code]Kind{
	ErrCodeInvalidInput:    KindClient,
	ErrCodeInvalidAdapter:  KindClient,
	ErrCodeInvalidBox:      KindClient,
	ErrCodeInvalidFrame:    KindClient,
	ErrCodeInvalidGravity:  KindClient,
	ErrCodeInvalidMode:     KindClient,
	ErrCodeInvalidFormat:   KindClient,
	ErrCodeInvalidDocument: KindClient,
	ErrCodeInvalidPath:     KindClient,
	ErrCodeNotFound:        KindNotFound,
	ErrCodeFileNotFound:    KindNotFound,
	ErrCodeUnsupported:     KindUnsupported,
}

// Kind returns the kind of c. Unknown codes are internal.
func (c Code) Kind() Kind { return codeKinds[c] }

// Error is a structured error with a code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := asError(err)
	return ok && e.Code == code
}

// KindOf returns the kind of err's code. Errors without a code are
// internal.
func KindOf(err error) Kind { return GetCode(err).Kind() }

// IsClientError reports whether err was caused by invalid caller input.
func IsClientError(err error) bool { return KindOf(err) == KindClient }

// ExitCode maps err to a process exit status: 0 for nil, 2 for client and
// not-found errors, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindClient, KindNotFound:
		return 2
	}
	return 1
}

// UserMessage returns the message of the outermost *Error without its code,
// or err.Error() for unstructured errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
