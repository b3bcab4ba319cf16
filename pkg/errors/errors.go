// Package errors provides structured error types for toplangs.
//
// Every failure that a caller may want to branch on carries a [Code]:
//   - DATA_FORMAT: a language record from the API is missing a field or holds
//     a value of the wrong type or range
//   - INVALID_CONFIG: the render configuration is geometrically inconsistent
//   - EMPTY_INPUT: there is nothing to render
//   - NETWORK_ERROR, RATE_LIMITED, UNAUTHORIZED, ...: GitHub transport failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "font size must be positive, got %g", size)
//	if errors.Is(err, errors.ErrCodeInvalidConfig) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to fetch %s", url)
//
// [Is] looks at every coded error in the chain, so wrapping a NETWORK_ERROR
// in an INTERNAL_ERROR keeps both codes visible. [GetCode] reports the
// outermost one.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Code is a machine-readable error category.
type Code string

func (c Code) String() string { return string(c) }

const (
	// Records and configuration
	ErrCodeDataFormat    Code = "DATA_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeEmptyInput    Code = "EMPTY_INPUT"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// GitHub responses
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeRateLimited  Code = "RATE_LIMITED"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeForbidden    Code = "FORBIDDEN"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED" // missing external tool or feature
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err for humans: the message of the outermost *Error
// without its code, followed by the causes' messages.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// RateLimitedError is the cause attached to RATE_LIMITED errors.
type RateLimitedError struct {
	RetryAfter time.Duration // zero when the server gave no hint
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %s", e.RetryAfter)
	}
	return "rate limited"
}
