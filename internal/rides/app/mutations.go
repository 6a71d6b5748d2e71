package app

import (
	"context"
	"fmt"
	"time"

	"ride-tracker/internal/rides/domain"
	"ride-tracker/internal/shared/apperrors"
	"ride-tracker/internal/shared/validation"
)

// CreateParams carries the body of POST /rides plus the optional reference
// coordinate from the query string (raw, for response annotation only).
type CreateParams struct {
	Status     string
	RiderID    int64
	DriverID   int64
	PickupLat  float64
	PickupLng  float64
	DropoffLat float64
	DropoffLng float64
	PickupTime time.Time

	RefLatitude  string
	RefLongitude string
}

// UpdateParams is the partial body of PATCH /rides/{id}; nil fields are not
// touched.
type UpdateParams struct {
	Status     *string
	RiderID    *int64
	DriverID   *int64
	PickupLat  *float64
	PickupLng  *float64
	DropoffLat *float64
	DropoffLng *float64
	PickupTime *time.Time

	RefLatitude  string
	RefLongitude string
}

// CreateRide validates and stores a new ride, records its creation event,
// and returns the assembled single-ride view. All validation happens before
// the write. An unusable reference coordinate is ignored here: the view just
// ships without a distance.
func (s *RideService) CreateRide(ctx context.Context, p CreateParams) (*domain.RideView, error) {
	instance := "RideService.CreateRide"

	if err := validateCreate(p); err != nil {
		return nil, err
	}

	ride, err := s.repo.Create(ctx, domain.CreateRideInput{
		Status:     p.Status,
		RiderID:    p.RiderID,
		DriverID:   p.DriverID,
		PickupLat:  p.PickupLat,
		PickupLng:  p.PickupLng,
		DropoffLat: p.DropoffLat,
		DropoffLng: p.DropoffLng,
		PickupTime: p.PickupTime,
	})
	if err != nil {
		if !apperrors.IsClientError(err) {
			s.logger.Error(instance, err)
		}
		return nil, err
	}

	s.recordEvent(ctx, ride.ID, "Ride created")

	ref, _ := parseReference(p.RefLatitude, p.RefLongitude, false)
	return s.assembleOne(ctx, ride, ref)
}

// UpdateRide applies a partial update. Only supplied fields are validated
// and changed; a status change is recorded as a ride event.
func (s *RideService) UpdateRide(ctx context.Context, id int64, p UpdateParams) (*domain.RideView, error) {
	instance := "RideService.UpdateRide"

	if err := validateUpdate(p); err != nil {
		return nil, err
	}

	ride, err := s.repo.Update(ctx, id, domain.UpdateRideInput{
		Status:     p.Status,
		RiderID:    p.RiderID,
		DriverID:   p.DriverID,
		PickupLat:  p.PickupLat,
		PickupLng:  p.PickupLng,
		DropoffLat: p.DropoffLat,
		DropoffLng: p.DropoffLng,
		PickupTime: p.PickupTime,
	})
	if err != nil {
		if !apperrors.IsClientError(err) {
			s.logger.Error(instance, err)
		}
		return nil, err
	}

	if p.Status != nil {
		s.recordEvent(ctx, ride.ID, fmt.Sprintf("Status changed to %s", *p.Status))
	}

	ref, _ := parseReference(p.RefLatitude, p.RefLongitude, false)
	return s.assembleOne(ctx, ride, ref)
}

// DeleteRide removes a ride and, via the storage cascade, all of its events.
func (s *RideService) DeleteRide(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !apperrors.IsClientError(err) {
			s.logger.Error("RideService.DeleteRide", err)
		}
		return err
	}
	return nil
}

// recordEvent appends to the ride's event log and fans the entry out. A
// failure here is logged but does not fail the mutation that triggered it.
func (s *RideService) recordEvent(ctx context.Context, rideID int64, description string) {
	ev, err := s.repo.AddEvent(ctx, rideID, description)
	if err != nil {
		s.logger.Error("RideService.recordEvent", err)
		return
	}
	if s.notifier != nil {
		s.notifier.EventRecorded(ctx, *ev)
	}
}

func validateCreate(p CreateParams) error {
	if err := validation.ValidateRideStatus(p.Status); err != nil {
		return err
	}
	if p.RiderID <= 0 {
		return apperrors.NewFieldError("id_rider", apperrors.ErrUnknownUser)
	}
	if p.DriverID <= 0 {
		return apperrors.NewFieldError("id_driver", apperrors.ErrUnknownUser)
	}
	if p.PickupTime.IsZero() {
		return apperrors.NewFieldError("pickup_time", apperrors.ErrValidation)
	}
	return validateRideCoordinates(
		&p.PickupLat, &p.PickupLng, &p.DropoffLat, &p.DropoffLng)
}

func validateUpdate(p UpdateParams) error {
	if p.Status != nil {
		if err := validation.ValidateRideStatus(*p.Status); err != nil {
			return err
		}
	}
	if p.RiderID != nil && *p.RiderID <= 0 {
		return apperrors.NewFieldError("id_rider", apperrors.ErrUnknownUser)
	}
	if p.DriverID != nil && *p.DriverID <= 0 {
		return apperrors.NewFieldError("id_driver", apperrors.ErrUnknownUser)
	}
	if p.PickupTime != nil && p.PickupTime.IsZero() {
		return apperrors.NewFieldError("pickup_time", apperrors.ErrValidation)
	}
	return validateRideCoordinates(
		p.PickupLat, p.PickupLng, p.DropoffLat, p.DropoffLng)
}

// validateRideCoordinates checks whichever of the four stored coordinates
// are supplied, reporting the first violation against its field name.
func validateRideCoordinates(pickupLat, pickupLng, dropoffLat, dropoffLng *float64) error {
	if pickupLat != nil {
		if err := validation.ValidateLatitude(*pickupLat); err != nil {
			return apperrors.NewFieldError("pickup_latitude", apperrors.ErrInvalidCoordinates)
		}
	}
	if pickupLng != nil {
		if err := validation.ValidateLongitude(*pickupLng); err != nil {
			return apperrors.NewFieldError("pickup_longitude", apperrors.ErrInvalidCoordinates)
		}
	}
	if dropoffLat != nil {
		if err := validation.ValidateLatitude(*dropoffLat); err != nil {
			return apperrors.NewFieldError("dropoff_latitude", apperrors.ErrInvalidCoordinates)
		}
	}
	if dropoffLng != nil {
		if err := validation.ValidateLongitude(*dropoffLng); err != nil {
			return apperrors.NewFieldError("dropoff_longitude", apperrors.ErrInvalidCoordinates)
		}
	}
	return nil
}
