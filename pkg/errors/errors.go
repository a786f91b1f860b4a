package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

const (
	ErrValidation ErrorCode = iota + 1000
	ErrNetwork
	ErrState
	ErrNotFound
	ErrUnauthorized
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation rejects client-side input before any network call is
// made. Message is the exact text the form shows inline; Field names
// the offending input.
func Validation(field, message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Network covers transport failures, non-2xx responses and payloads
// that do not match the expected schema.
func Network(message string, err error) *AppError {
	if message == "" {
		message = "request failed, please try again"
	}
	return &AppError{
		Code:    ErrNetwork,
		Message: message,
		Err:     err,
	}
}

// State marks a wizard transition whose dependency chain is unsatisfied.
func State(message string) *AppError {
	return &AppError{
		Code:    ErrState,
		Message: message,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal error",
		Err:     err,
	}
}

// CodeOf returns the error's code, or ErrInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

func IsValidation(err error) bool { return CodeOf(err) == ErrValidation }
func IsNetwork(err error) bool    { return CodeOf(err) == ErrNetwork }
func IsState(err error) bool      { return CodeOf(err) == ErrState }
