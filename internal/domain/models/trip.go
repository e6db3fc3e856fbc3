package models

import "time"

// Stored trip statuses. "full" is never persisted; it is derived from the
// seat counter so availability and status cannot drift apart.
const (
	TripScheduled = "scheduled"
	TripFull      = "full"
	TripCompleted = "completed"
	TripCancelled = "cancelled"
)

type Trip struct {
	ID             int64     `json:"id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureDate  string    `json:"departure_date"`
	DepartureTime  string    `json:"departure_time"`
	Capacity       int       `json:"capacity"`
	AvailableSeats int       `json:"available_seats"`
	Price          int64     `json:"price"`
	Status         string    `json:"status"`
	CreatedBy      int64     `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EffectiveStatus derives "full" for a scheduled trip with no seats left.
func (t Trip) EffectiveStatus() string {
	if t.Status == TripScheduled && t.AvailableSeats <= 0 {
		return TripFull
	}
	return t.Status
}

// Bookable reports whether new bookings may target this trip at all;
// seat availability is checked separately.
func (t Trip) Bookable() bool {
	return t.Status == TripScheduled
}

// TripUpdate supports PATCH-style updates via key presence.
type TripUpdate struct {
	Origin        *string `json:"origin"`
	Destination   *string `json:"destination"`
	DepartureDate *string `json:"departure_date"`
	DepartureTime *string `json:"departure_time"`
	Price         *int64  `json:"price"`
	Status        *string `json:"status"`
}

// TripFilter narrows public and admin trip listings.
type TripFilter struct {
	Origin      string
	Destination string
	Date        string
	Status      string
	// IncludeAll lifts the default {scheduled, full} visibility filter.
	IncludeAll bool
}
