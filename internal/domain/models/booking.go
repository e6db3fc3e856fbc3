package models

import "time"

// Booking statuses. Confirmed is the only seat-consuming state: exactly one
// seat is taken on pending→confirmed and given back when a confirmed booking
// is cancelled. SeatHeld records that the decrement actually happened.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type Booking struct {
	ID            int64     `json:"id"`
	Reference     string    `json:"reference"`
	TripID        int64     `json:"trip_id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentLink   string    `json:"payment_link,omitempty"`
	SeatHeld      bool      `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Terminal reports whether no further transitions are allowed.
func (b Booking) Terminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingCompleted
}

// ValidBookingStatus limits admin transitions to the state-machine targets.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// BookingWithTrip joins a booking to its trip projection for display.
// Trip is nil when the referenced trip has been deleted.
type BookingWithTrip struct {
	Booking
	Trip *Trip `json:"trip,omitempty"`
}

// BookingFilter narrows admin booking listings.
type BookingFilter struct {
	Status string
	TripID int64
}

// Pagination carries the requested window and the filtered total.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Offset computes the row window start for a 1-based page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
