package errorx

import (
	"errors"
	"fmt"
)

// CodeError is an error carrying a business code.
// It wraps an optional cause so errors.Is/errors.As keep working through it.
type CodeError struct {
	Code  int    // business code
	Msg   string // message safe to show to the caller
	cause error  // wrapped error, never shown to the caller
}

// Error returns "msg: cause" when a cause exists, otherwise just msg.
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap exposes the cause to errors.Is/errors.As.
func (e *CodeError) Unwrap() error {
	return e.cause
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

// Wrap attaches a code and message to err.
// Usage: errorx.Wrap(err, CodeNotFound, "user not found")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf is Wrap with a formatted message.
// Usage: errorx.Wrapf(err, CodeNotFound, "user %d not found", id)
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode extracts the business code from err, CodeServerBusy if there is none.
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// Business codes.
const (
	CodeSuccess            = 1000 // ok
	CodeInvalidParam       = 1001 // missing or malformed input
	CodeUserExist          = 1002 // phone or email already registered
	CodeInvalidCredentials = 1004 // bad phone/password pair at login
	CodeServerBusy         = 1005 // unexpected failure
	CodeUnauthenticated    = 1006 // no token presented
	CodeForbidden          = 1007 // token present but rejected
	CodeNotFound           = 1008 // resource does not exist
	CodeDuplicate          = 1009 // unique constraint violated in the store
	CodeDBError            = 1010 // persistence failure
)

// Predefined errors, usable directly or with errors.Is.
var (
	ErrInvalidParam = New(CodeInvalidParam, "Invalid request parameters")
	ErrServerBusy   = New(CodeServerBusy, "Something went wrong")
)

// IsNotFound reports whether err is a "not found" error, including gorm.ErrRecordNotFound.
func IsNotFound(err error) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) && codeErr.Code == CodeNotFound {
		return true
	}
	return err != nil && err.Error() == "record not found"
}

// IsDuplicate reports whether err is a unique constraint violation wrapped by the dao layer.
func IsDuplicate(err error) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == CodeDuplicate
}
