package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidFilter      = errors.New("invalid status filter, must be one of: en-route, pickup, dropoff")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrNotFound           = errors.New("ride not found")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("admin access required")
	ErrEmailTaken         = errors.New("email or username already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownUser        = errors.New("referenced user does not exist")
	ErrValidation         = errors.New("invalid value")
)

// FieldError scopes a validation error to the request parameter that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func NewFieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// StatusCode maps an error to the HTTP status it should surface as.
// Unrecognized errors are storage or internal failures and map to 500;
// the caller is expected to log the detail and send a generic body.
func StatusCode(err error) int {
	// Every FieldError is a request validation failure by construction.
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		switch {
		case errors.Is(err, ErrNotFound):
			return http.StatusNotFound
		default:
			return http.StatusBadRequest
		}
	}

	switch {
	case errors.Is(err, ErrInvalidFilter), errors.Is(err, ErrInvalidCoordinates), errors.Is(err, ErrUnknownUser):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// IsClientError reports whether err carries a message safe to show the caller.
func IsClientError(err error) bool {
	return StatusCode(err) < http.StatusInternalServerError
}
