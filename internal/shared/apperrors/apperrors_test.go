package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid filter", ErrInvalidFilter, http.StatusBadRequest},
		{"invalid coordinates", ErrInvalidCoordinates, http.StatusBadRequest},
		{"unknown user", ErrUnknownUser, http.StatusBadRequest},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"email taken", ErrEmailTaken, http.StatusConflict},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
		{"wrapped storage failure", fmt.Errorf("list rides failed: %w", errors.New("timeout")), http.StatusInternalServerError},
		{"field-scoped filter", NewFieldError("status", ErrInvalidFilter), http.StatusBadRequest},
		{"field-scoped coordinates", NewFieldError("latitude", ErrInvalidCoordinates), http.StatusBadRequest},
		{"field-scoped plain detail", NewFieldError("pickup_time", ErrValidation), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFieldErrorMessageNamesParameter(t *testing.T) {
	err := NewFieldError("latitude", ErrInvalidCoordinates)
	want := "latitude: invalid coordinates"
	if err.Error() != want {
		t.Errorf("FieldError message = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Error("FieldError should unwrap to its sentinel")
	}
}

func TestIsClientError(t *testing.T) {
	if !IsClientError(ErrNotFound) {
		t.Error("ErrNotFound should be a client error")
	}
	if IsClientError(errors.New("disk on fire")) {
		t.Error("unknown errors must not leak to the client")
	}
}
