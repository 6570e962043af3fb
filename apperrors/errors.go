// Package apperrors defines the error classes shared by the domain
// handlers and their HTTP status mapping.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized covers both "missing" and "not yours" so feature
	// existence never leaks through the status code
	ErrNotAuthorized = errors.New("not found or not authorized")
	ErrDuplicate     = errors.New("already exists")
	ErrQuotaExceeded = errors.New("plan limit reached")
	ErrInvalidToken  = errors.New("invalid or already used token")
	ErrValidation    = errors.New("invalid input")
)

// Error attaches a user-facing message to one of the sentinel classes
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func NotAuthorized(message string) error {
	return &Error{Kind: ErrNotAuthorized, Message: message}
}

func Duplicate(message string) error {
	return &Error{Kind: ErrDuplicate, Message: message}
}

func QuotaExceeded(message string) error {
	return &Error{Kind: ErrQuotaExceeded, Message: message}
}

func InvalidToken(message string) error {
	return &Error{Kind: ErrInvalidToken, Message: message}
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

// Status maps an error class to its HTTP status. NotAuthorized renders
// as 404 on purpose.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidToken):
		return http.StatusGone
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotAuthorized):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
