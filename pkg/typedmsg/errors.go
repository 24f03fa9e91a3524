// Package typedmsg error types.
//
// Every failure of the digest pipeline is reported as *Error carrying one
// of the codes below, so callers can branch on the failure class without
// string matching.
package typedmsg

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a digest pipeline failure.
type ErrorCode string

// Failure classes returned by the digest pipeline.
const (
	ErrHost                    ErrorCode = "HOST_ERROR"                // A loader call failed for a reason other than running off the end
	ErrDecode                  ErrorCode = "DECODE_ERROR"              // The serialized envelope is too short or internally inconsistent
	ErrMalformedWitness        ErrorCode = "MALFORMED_WITNESS"         // The group's primary witness is not an acceptable extended witness
	ErrUnexpectedTrailerData   ErrorCode = "UNEXPECTED_TRAILER_DATA"   // A non-primary group witness carries bytes
	ErrMissingActionWitness    ErrorCode = "MISSING_ACTION_WITNESS"    // No witness in the transaction carries the typed message
	ErrMultipleActionWitnesses ErrorCode = "MULTIPLE_ACTION_WITNESSES" // More than one witness carries a typed message
)

// Error is returned by every failing pipeline operation.
type Error struct {
	Code  ErrorCode // Stable failure class
	Msg   string    // Human-readable detail
	Cause error     // Underlying error (if any)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("typed message [%s]: %s: %v", e.Code, e.Msg, e.Cause)
	}
	return fmt.Sprintf("typed message [%s]: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func hostErr(op string, cause error) *Error {
	return &Error{Code: ErrHost, Msg: op + " failed", Cause: cause}
}

// CodeOf extracts the failure class from err. It returns the empty code
// when err did not come from this package.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
