package errlog

import (
	"errors"
	"fmt"
)

// Error is a failure surfaced by the error log facade.
//
// Every failure propagates to the immediate caller with a distinguishing
// code; a backend failure is never folded into a successful empty result.
// "Not found" is not an error (GetError returns a nil entry).
type Error struct {
	// Code identifies the failure category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Code categorizes facade failures.
type Code string

const (
	// CodeConfiguration marks invalid construction-time settings. Fatal: the
	// facade is not usable afterwards.
	CodeConfiguration Code = "CONFIGURATION"

	// CodeInvalidArgument marks a caller-supplied runtime parameter that
	// violates a documented precondition, such as negative pagination values.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeInvalidIdentity marks an empty or unparseable identity string.
	CodeInvalidIdentity Code = "INVALID_IDENTITY"

	// CodeInvalidOperation marks a programming error, such as assigning the
	// schema qualifier twice.
	CodeInvalidOperation Code = "INVALID_OPERATION"

	// CodeStoreUnavailable marks a transient backend connectivity failure.
	// The caller may retry; the facade itself never retries.
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"

	// CodeWriteFailed marks a write that was issued but did not commit.
	// No partial write is ever visible.
	CodeWriteFailed Code = "WRITE_FAILED"

	// CodeCodec marks a malformed stored payload encountered on decode.
	CodeCodec Code = "CODEC"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError creates an Error without an underlying cause.
func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// wrapError creates an Error wrapping an underlying cause.
func wrapError(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the failure code from an error.
// Returns "" if the error did not originate in this package.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err carries the given failure code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsStoreUnavailable reports whether err is a transient backend failure
// that the caller may retry.
func IsStoreUnavailable(err error) bool {
	return HasCode(err, CodeStoreUnavailable)
}

// IsWriteFailed reports whether err is an uncommitted write.
func IsWriteFailed(err error) bool {
	return HasCode(err, CodeWriteFailed)
}
