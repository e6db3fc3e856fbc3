package models

import "testing"

func TestPaginationOffset(t *testing.T) {
	cases := []struct {
		page, limit, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
		{0, 20, 0},
	}
	for _, tc := range cases {
		p := Pagination{Page: tc.page, Limit: tc.limit}
		if got := p.Offset(); got != tc.want {
			t.Fatalf("page=%d limit=%d: offset %d, want %d", tc.page, tc.limit, got, tc.want)
		}
	}
}

func TestEffectiveStatusDerivesFull(t *testing.T) {
	trip := Trip{Status: TripScheduled, Capacity: 2, AvailableSeats: 0}
	if got := trip.EffectiveStatus(); got != TripFull {
		t.Fatalf("expected full, got %s", got)
	}

	trip.AvailableSeats = 1
	if got := trip.EffectiveStatus(); got != TripScheduled {
		t.Fatalf("expected scheduled, got %s", got)
	}

	// Completed and cancelled are stored as-is, never overridden.
	trip = Trip{Status: TripCompleted, AvailableSeats: 0}
	if got := trip.EffectiveStatus(); got != TripCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
}

func TestValidBookingStatus(t *testing.T) {
	for _, s := range []string{BookingConfirmed, BookingCancelled, BookingCompleted} {
		if !ValidBookingStatus(s) {
			t.Fatalf("%s should be a valid transition target", s)
		}
	}
	for _, s := range []string{BookingPending, "paid", ""} {
		if ValidBookingStatus(s) {
			t.Fatalf("%s should not be a valid transition target", s)
		}
	}
}
