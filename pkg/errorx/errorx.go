// Package errorx defines the business error type shared by every layer.
// A CodeError carries a numeric business code that the HTTP layer maps to a
// status, and optionally wraps the underlying cause for errors.Is/errors.As.
package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error tagged with a business code.
type CodeError struct {
	Code  int    // business code
	Msg   string // client-facing message
	cause error  // wrapped error, never shown to clients
}

// Error returns "msg: cause" when a cause exists, otherwise msg.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause.
func (e *CodeError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a CodeError with the same code, so that the
// predefined instances below can be used with errors.Is.
func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// New creates a CodeError.
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf creates a CodeError with a formatted message.
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a business code and message to err.
// Usage: errorx.Wrap(err, CodeNotFound, "user not found")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from err, CodeServerBusy if err is not a CodeError.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business codes.
const (
	CodeSuccess         = 1000 // ok
	CodeInvalidParam    = 1001 // validation error
	CodeUserExist       = 1002 // email already registered
	CodeUserNotExist    = 1003 // unknown user
	CodeInvalidPassword = 1004 // bad credentials
	CodeServerBusy      = 1005 // internal
	CodeUnauthorized    = 1006 // missing or invalid token
	CodeForbidden       = 1007 // authenticated but not permitted
	CodeNotFound        = 1008 // entity missing
	CodeDBError         = 1010 // storage failure
	CodeCacheError      = 1011 // cache failure
)

// Predefined errors, usable directly or as errors.Is targets.
var (
	ErrInvalidParam = New(CodeInvalidParam, "invalid parameter")
	ErrServerBusy   = New(CodeServerBusy, "server busy")
	ErrForbidden    = New(CodeForbidden, "forbidden")
	ErrNotFound     = New(CodeNotFound, "not found")
)

// IsNotFound reports whether err means a missing entity (including gorm's record not found).
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && (codeErr.Code == CodeNotFound || codeErr.Code == CodeUserNotExist) {
		return true
	}
	return err != nil && err.Error() == "record not found"
}

// IsForbidden reports whether err carries CodeForbidden.
func IsForbidden(err error) bool {
	return GetCode(err) == CodeForbidden
}
