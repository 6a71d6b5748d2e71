package domain

import "time"

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PointView struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type EventView struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RideView is the API shape of a ride. DistanceToPickup is present only when
// the request supplied a valid reference coordinate.
type RideView struct {
	ID               int64       `json:"id"`
	Status           string      `json:"status"`
	Rider            UserView    `json:"rider"`
	Driver           UserView    `json:"driver"`
	Pickup           PointView   `json:"pickup"`
	Dropoff          PointView   `json:"dropoff"`
	PickupTime       time.Time   `json:"pickup_time"`
	TodaysRideEvents []EventView `json:"todays_ride_events"`
	DistanceToPickup *float64    `json:"distance_to_pickup"`
}

// Page is one page of ride views plus pagination metadata. Count is the
// total number of matching rides across all pages.
type Page struct {
	Count    int        `json:"count"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Results  []RideView `json:"results"`
}
