package shogun

import (
	"errors"
	"fmt"
	"syscall"
)

// Error is a structured error describing which boot step or runtime
// operation failed, carrying a high-level category, the kernel errno
// behind a privileged-instruction failure (if any), and an optional
// wrapped cause.
type Error struct {
	Op    string        // boot step or operation that failed, e.g. "boot.pic", "heap.allocate"
	Code  ErrorCode     // high-level category
	Errno syscall.Errno // errno from a privileged syscall failure (0 if not applicable)
	Msg   string        // human-readable message
	Inner error         // wrapped cause, if any
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Errno != 0 {
		msg = fmt.Sprintf("%s (errno %d)", msg, e.Errno)
	}
	if e.Op != "" {
		return fmt.Sprintf("shogun: %s: %s", e.Op, msg)
	}
	return fmt.Sprintf("shogun: %s", msg)
}

// Unwrap supports errors.Is/As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is supports errors.Is comparison by Code.
func (e *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == te.Code
}

// ErrorCode is a high-level error category.
type ErrorCode string

const (
	ErrCodePortUnavailable   ErrorCode = "port unavailable"
	ErrCodeHeapExhausted     ErrorCode = "heap exhausted"
	ErrCodeInvalidParameters ErrorCode = "invalid parameters"
	ErrCodeBootTimeout       ErrorCode = "boot step timed out"
	ErrCodeNotBooted         ErrorCode = "kernel not booted"
	ErrCodePermissionDenied  ErrorCode = "permission denied"
	ErrCodeIOError           ErrorCode = "I/O error"
)

// NewError creates a structured error.
func NewError(op string, code ErrorCode, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// NewErrnoError creates a structured error from a privileged syscall
// failure, mapping errno to a high-level ErrorCode.
func NewErrnoError(op string, errno syscall.Errno) *Error {
	return &Error{Op: op, Code: mapErrnoToCode(errno), Errno: errno, Msg: errno.Error()}
}

// WrapError wraps cause with op context, preserving cause's Code and
// Errno if it is itself a *Error.
func WrapError(op string, cause error) *Error {
	if cause == nil {
		return nil
	}
	if e, ok := cause.(*Error); ok {
		return &Error{Op: op, Code: e.Code, Errno: e.Errno, Msg: e.Msg, Inner: e.Inner}
	}
	var errno syscall.Errno
	if errors.As(cause, &errno) {
		return &Error{Op: op, Code: mapErrnoToCode(errno), Errno: errno, Msg: cause.Error(), Inner: cause}
	}
	return &Error{Op: op, Code: ErrCodeInvalidParameters, Msg: cause.Error(), Inner: cause}
}

// mapErrnoToCode maps a syscall errno to a high-level ErrorCode.
func mapErrnoToCode(errno syscall.Errno) ErrorCode {
	switch errno {
	case syscall.EPERM, syscall.EACCES:
		return ErrCodePermissionDenied
	case syscall.EINVAL:
		return ErrCodeInvalidParameters
	default:
		return ErrCodeIOError
	}
}

// IsCode reports whether err is a *Error with the given Code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
