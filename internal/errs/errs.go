package errs

import (
	"errors"
	"fmt"
)

// Error codes attached to every failure a store operation can report. The
// transport layer maps them onto HTTP statuses.
const (
	ECONFLICT   = "duplicate_edge"   // creating an edge that already exists
	EINVALID    = "validation"       // malformed input, e.g. empty message body
	EINVALIDARG = "invalid_argument" // self-referential edge
	ENOTFOUND   = "not_found"        // missing user/chat/edge/request
	EINTERNAL   = "internal"         // anything unexpected
)

// Error is an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds an *Error with the given code and a formatted message.
func Errorf(code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the code from an error, defaulting to EINTERNAL for
// errors that did not originate here. A nil error has no code.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the user-facing message from an error. Unexpected
// errors get a generic message so internals never leak to clients.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	}
	if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}
