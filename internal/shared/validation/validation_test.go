package validation

import (
	"errors"
	"testing"

	"ride-tracker/internal/shared/apperrors"
)

func TestValidateRideStatus(t *testing.T) {
	tests := []struct {
		status  string
		wantErr bool
	}{
		{"en-route", false},
		{"pickup", false},
		{"dropoff", false},
		{"completed", true},
		{"EN-ROUTE", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateRideStatus(tt.status)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRideStatus(%q) error = %v, wantErr %v", tt.status, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, apperrors.ErrInvalidFilter) {
			t.Errorf("ValidateRideStatus(%q) should wrap ErrInvalidFilter, got %v", tt.status, err)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid", 37.7749, -122.4194, false},
		{"boundary lat", 90, 0, false},
		{"boundary lng", 0, -180, false},
		{"lat too high", 95, 0, true},
		{"lat too low", -90.01, 0, true},
		{"lng too high", 0, 180.5, true},
		{"lng too low", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates(%v, %v) error = %v, wantErr %v", tt.lat, tt.lng, err, tt.wantErr)
			}
		})
	}
}

func TestClampPagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative page", -3, 20, 1, 20},
		{"within bounds", 4, 25, 4, 25},
		{"oversized clamps not rejects", 1, 500, 1, MaxPageSize},
		{"max exactly", 2, 100, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := ClampPagination(tt.page, tt.pageSize)
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("ClampPagination(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestValidateEventDescription(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}

	if err := ValidateEventDescription("Status changed to pickup"); err != nil {
		t.Errorf("valid description rejected: %v", err)
	}
	if err := ValidateEventDescription(""); err == nil {
		t.Error("empty description accepted")
	}
	if err := ValidateEventDescription(string(long)); err == nil {
		t.Error("256-char description accepted")
	}
}
