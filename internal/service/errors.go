package service

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrMalformedID        = errors.New("malformatted id")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("token missing or invalid")
	ErrNotOwner           = errors.New("only the creator can modify this blog")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
)

// ValidationError reports a rejected request body or query.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// notFound yields e.g. "blog not found" while matching ErrNotFound.
func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}
