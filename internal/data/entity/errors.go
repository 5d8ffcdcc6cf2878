package entity

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeValidation            ErrorCode = "validation_error"
	CodeNotFound              ErrorCode = "not_found"
	CodeForbidden             ErrorCode = "forbidden"
	CodeInvalidTransition     ErrorCode = "invalid_transition"
	CodeStaleState            ErrorCode = "stale_state"
	CodeDirectoryUnavailable  ErrorCode = "directory_unavailable"
	CodeRepositoryUnavailable ErrorCode = "repository_unavailable"
)

// Error carries a machine-readable code alongside the message so handlers
// can map failures to HTTP statuses without string matching.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

func NewInvalidTransitionError(message string) *Error {
	return &Error{Code: CodeInvalidTransition, Message: message}
}

func NewStaleStateError(message string) *Error {
	return &Error{Code: CodeStaleState, Message: message}
}

func NewDirectoryUnavailableError(err error) *Error {
	return &Error{Code: CodeDirectoryUnavailable, Message: "worker directory unavailable", Err: err}
}

func NewRepositoryUnavailableError(err error) *Error {
	return &Error{Code: CodeRepositoryUnavailable, Message: "booking repository unavailable", Err: err}
}

// CodeOf extracts the error code from anywhere in the chain.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
