package clipper

import (
	"context"
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be machine-readable and map roughly onto classes
// of failure rather than onto specific call sites. ECANCELED is never
// wrapped into another code so that callers can distinguish a user
// cancel from a real error.
const (
	ECANCELED     = "canceled"       // operation canceled by the caller
	EENCODING     = "encoding"       // no decodable charset found
	EINTERNAL     = "internal"       // unexpected internal error
	EINVALID      = "invalid"        // invalid input or permanent HTTP failure
	ENOTFOUND     = "not_found"      // entity does not exist
	ERATELIMIT    = "rate_limit"     // HTTP 429, retried with backoff
	EUNAUTHORIZED = "unauthorized"   // missing or rejected API key
	EUNAVAILABLE  = "unavailable"    // transient network failure, retried
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("clipper error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper for constructing an Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of an error. Context cancellation is
// reported as ECANCELED regardless of how deep it was wrapped.
// Non-application errors report EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.Is(err, context.Canceled) {
		return ECANCELED
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of an application error, or a
// generic message for non-application errors.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}

// IsRetryable reports whether an error represents a transient failure
// worth retrying: rate limiting and transient network errors only.
func IsRetryable(err error) bool {
	switch ErrorCode(err) {
	case ERATELIMIT, EUNAVAILABLE:
		return true
	}
	return false
}
