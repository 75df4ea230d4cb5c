// Package apperror defines the domain error taxonomy shared by all layers.
//
// Services return these errors; the HTTP layer inspects them with errors.Is /
// errors.As and maps them to status codes. Nothing below the handler layer
// knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrap these (via the constructors below) so callers can
// classify failures with errors.Is without depending on message text.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrInvalidID   = errors.New("invalid identifier")
	ErrCredentials = errors.New("invalid credentials")
)

// AppError carries a sentinel (for classification) plus a human-readable
// message (for the response body).
type AppError struct {
	Err     error  // sentinel error, matched by errors.Is
	Message string // human-readable description, safe to return to clients
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no document exists for the given resource/id pair.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// ValidationFailed reports a malformed or missing request field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports that a uniqueness constraint was violated.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// InvalidID reports that a path or token identifier failed to parse.
// The raw value is deliberately not echoed back.
func InvalidID() *AppError {
	return &AppError{
		Err:     ErrInvalidID,
		Message: "Invalid ID Format",
	}
}

// InvalidCredentials reports a failed login. One message for both "no such
// user" and "wrong password" — the response must not reveal which it was.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrCredentials,
		Message: "Invalid credentials",
	}
}
