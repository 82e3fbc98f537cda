package disco

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeMissingParameter  ErrorCode = "missing_parameter"
	CodeInvalidParameter  ErrorCode = "invalid_parameter"
	CodeUnknownParameter  ErrorCode = "unknown_parameter"
	CodeInvalidPattern    ErrorCode = "invalid_pattern"
	CodeUnsupportedMethod ErrorCode = "unsupported_method"
	CodeInvalidEncoding   ErrorCode = "invalid_encoding"
	CodeInvalidTemplate   ErrorCode = "invalid_template"
	CodeInvalidBase       ErrorCode = "invalid_base"
	CodeTransport         ErrorCode = "transport"
)

// ErrReused is returned by Do when a Request is executed more than once.
// A Request is single-use: configure it, execute it, discard it.
var ErrReused = errors.New("disco: request already executed")

// Error is the typed error produced by request validation, URL construction,
// and execution. Callers can distinguish a validation failure from a
// transport failure by Code, and recover the offending parameter names
// from Params.
type Error struct {
	Code    ErrorCode
	Message string

	// Params names the offending parameters for validation failures.
	Params []string

	// Err is the underlying cause, if any (e.g. the net/http error for
	// CodeTransport).
	Err error
}

func (e *Error) Error() string {
	if len(e.Params) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Params, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new request error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new request error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithParams returns a copy of the error naming the offending parameters.
func (e *Error) WithParams(names ...string) *Error {
	params := make([]string, 0, len(e.Params)+len(names))
	params = append(params, e.Params...)
	params = append(params, names...)
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Params:  params,
		Err:     e.Err,
	}
}

// AsError unwraps err into a *Error, if it is one.
func AsError(err error) (*Error, bool) {
	var reqErr *Error
	ok := errors.As(err, &reqErr)
	return reqErr, ok
}
