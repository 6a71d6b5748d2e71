package api

import "time"

type createRideRequest struct {
	Status           string    `json:"status"`
	RiderID          int64     `json:"id_rider"`
	DriverID         int64     `json:"id_driver"`
	PickupLatitude   float64   `json:"pickup_latitude"`
	PickupLongitude  float64   `json:"pickup_longitude"`
	DropoffLatitude  float64   `json:"dropoff_latitude"`
	DropoffLongitude float64   `json:"dropoff_longitude"`
	PickupTime       time.Time `json:"pickup_time"`
}

type updateRideRequest struct {
	Status           *string    `json:"status"`
	RiderID          *int64     `json:"id_rider"`
	DriverID         *int64     `json:"id_driver"`
	PickupLatitude   *float64   `json:"pickup_latitude"`
	PickupLongitude  *float64   `json:"pickup_longitude"`
	DropoffLatitude  *float64   `json:"dropoff_latitude"`
	DropoffLongitude *float64   `json:"dropoff_longitude"`
	PickupTime       *time.Time `json:"pickup_time"`
}
