package domain

import "time"

// Ride statuses. No transition graph is enforced between them; any status
// may be set directly.
const (
	StatusEnRoute = "en-route"
	StatusPickup  = "pickup"
	StatusDropoff = "dropoff"
)

// UserSnapshot is the read-only identity of a rider or driver as carried on
// a ride row.
type UserSnapshot struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// Ride is one stored trip record together with its rider and driver
// snapshots.
type Ride struct {
	ID         int64
	Status     string
	RiderID    int64
	DriverID   int64
	Rider      UserSnapshot
	Driver     UserSnapshot
	PickupLat  float64
	PickupLng  float64
	DropoffLat float64
	DropoffLng float64
	PickupTime time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RideEvent is an immutable log entry attached to a ride.
type RideEvent struct {
	ID          int64     `json:"id"`
	RideID      int64     `json:"id_ride"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRideInput carries the fields required to create a ride.
type CreateRideInput struct {
	Status     string
	RiderID    int64
	DriverID   int64
	PickupLat  float64
	PickupLng  float64
	DropoffLat float64
	DropoffLng float64
	PickupTime time.Time
}

// UpdateRideInput is a partial update; nil fields are left unchanged.
// updated_at refreshes on any successful update regardless of which fields
// are present.
type UpdateRideInput struct {
	Status     *string
	RiderID    *int64
	DriverID   *int64
	PickupLat  *float64
	PickupLng  *float64
	DropoffLat *float64
	DropoffLng *float64
	PickupTime *time.Time
}
