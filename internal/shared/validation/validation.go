package validation

import (
	"errors"
	"fmt"

	"ride-tracker/internal/shared/apperrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ValidRideStatuses are the only values a ride's status may hold.
var ValidRideStatuses = []string{"en-route", "pickup", "dropoff"}

// ValidateRideStatus validates that a status is one of the allowed values.
func ValidateRideStatus(status string) error {
	for _, valid := range ValidRideStatuses {
		if status == valid {
			return nil
		}
	}
	return apperrors.NewFieldError("status", apperrors.ErrInvalidFilter)
}

// ValidateLatitude validates a latitude value in degrees.
func ValidateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates a longitude value in degrees.
func ValidateLongitude(lng float64) error {
	if lng < -180 || lng > 180 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateCoordinates validates a latitude/longitude pair.
func ValidateCoordinates(lat, lng float64) error {
	if err := ValidateLatitude(lat); err != nil {
		return err
	}
	return ValidateLongitude(lng)
}

// ValidateEventDescription validates a ride event description.
func ValidateEventDescription(description string) error {
	if description == "" {
		return errors.New("description cannot be empty")
	}
	if len(description) > 255 {
		return fmt.Errorf("description exceeds %d characters", 255)
	}
	return nil
}

// ClampPagination normalizes pagination parameters: pages below 1 become 1,
// a missing page size becomes the default, and oversized requests are
// clamped to the maximum rather than rejected.
func ClampPagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ValidateStringNotEmpty validates that a string is not empty.
func ValidateStringNotEmpty(value, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}
