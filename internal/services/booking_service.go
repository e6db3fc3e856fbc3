package services

import (
	"database/sql"
	"fmt"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"

	"github.com/google/uuid"
)

// PaymentLinks is the static Wave checkout lookup by price tier.
type PaymentLinks struct {
	Link2500 string
	Link3000 string
}

// CheckoutFor picks the checkout link matching the trip price. Anything
// other than the 2500 tier falls through to the 3000 link, as the original
// payment setup only ever carried these two.
func (p PaymentLinks) CheckoutFor(price int64) string {
	if price == 2500 {
		return p.Link2500
	}
	return p.Link3000
}

// BookingService owns the booking state machine. A pending booking holds no
// seat: the single decrement happens on pending→confirmed and the single
// compensating increment when a confirmed booking cancels. seat_held records
// the decrement so cancellation never guesses from the event alone.
type BookingService struct {
	DB        *sql.DB
	Bookings  repositories.BookingRepository
	Trips     repositories.TripRepository
	Links     PaymentLinks
	RequestID string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

type CreateBookingInput struct {
	TripID   int64  `json:"trip_id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// BookingReceipt pairs the created booking with its checkout reference.
type BookingReceipt struct {
	Booking models.Booking `json:"booking"`
	Payment struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"payment"`
}

// Create opens a pending booking. Seat availability is a visibility gate
// here, not a reservation; the seat is taken only at confirmation.
func (s BookingService) Create(in CreateBookingInput) (BookingReceipt, error) {
	var out BookingReceipt

	in.FullName = utils.NormalizeSpace(in.FullName)
	in.Phone = utils.NormalizePhone(in.Phone)
	switch {
	case in.TripID <= 0:
		return out, domain.ValidationError{Field: "trip_id", Msg: "required"}
	case in.FullName == "":
		return out, domain.ValidationError{Field: "full_name", Msg: "required"}
	case in.Phone == "":
		return out, domain.ValidationError{Field: "phone", Msg: "required"}
	}

	trip, err := s.Trips.GetByID(in.TripID)
	if err != nil {
		return out, wrapStorage(err, "failed to load trip")
	}
	if !trip.Bookable() {
		return out, domain.ConflictError{Resource: "trip", Msg: "trip is not open for booking"}
	}
	if trip.AvailableSeats <= 0 {
		return out, domain.ConflictError{Resource: "trip", Msg: domain.ErrNoSeats.Error(), Err: domain.ErrNoSeats}
	}

	link := s.Links.CheckoutFor(trip.Price)
	booking, err := s.Bookings.Create(models.Booking{
		Reference:     uuid.NewString(),
		TripID:        trip.ID,
		FullName:      in.FullName,
		Phone:         in.Phone,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		PaymentLink:   link,
	})
	if err != nil {
		return out, wrapStorage(err, "failed to create booking")
	}

	utils.LogEvent(s.RequestID, "bookings", "create",
		fmt.Sprintf("booking_id=%d trip_id=%d", booking.ID, trip.ID))

	out.Booking = booking
	out.Payment.CheckoutURL = link
	return out, nil
}

func (s BookingService) Get(id int64) (models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return models.Booking{}, wrapStorage(err, "failed to load booking")
	}
	return b, nil
}

func (s BookingService) ListForPhone(phone string) ([]models.BookingWithTrip, error) {
	phone = utils.NormalizePhone(phone)
	if phone == "" {
		return nil, domain.ValidationError{Field: "phone", Msg: "required"}
	}
	out, err := s.Bookings.ListByPhone(phone)
	if err != nil {
		return nil, wrapStorage(err, "failed to list bookings")
	}
	return out, nil
}

func (s BookingService) ListAll(f models.BookingFilter, page, limit int) ([]models.BookingWithTrip, models.Pagination, error) {
	rows, total, err := s.Bookings.ListAll(f, page, limit)
	if err != nil {
		return nil, models.Pagination{}, wrapStorage(err, "failed to list bookings")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return rows, models.Pagination{Page: page, Limit: limit, Total: total}, nil
}

// Cancel is the requester-facing cancellation; it runs the same transition
// the admin endpoint uses.
func (s BookingService) Cancel(id int64) (models.Booking, error) {
	return s.SetStatus(id, models.BookingCancelled)
}

// SetStatus applies one state-machine transition. Transitions with an
// inventory side effect commit the status write and the seat mutation in a
// single transaction, so a failed seat adjustment never leaves a half-done
// transition behind. The status write re-checks the prior state in the store;
// two identical transitions racing off the same read produce one winner and
// one rolled-back conflict, never a double seat mutation.
func (s BookingService) SetStatus(id int64, status string) (models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "must be confirmed, cancelled or completed"}
	}

	booking, err := s.Bookings.GetByID(id)
	if err != nil {
		return models.Booking{}, wrapStorage(err, "failed to load booking")
	}

	switch status {
	case models.BookingConfirmed:
		err = s.confirm(booking)
	case models.BookingCancelled:
		err = s.cancel(booking)
	case models.BookingCompleted:
		err = s.complete(booking)
	}
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "bookings", "status",
		fmt.Sprintf("booking_id=%d %s->%s", booking.ID, booking.Status, status))
	return s.Get(id)
}

func (s BookingService) confirm(b models.Booking) error {
	if b.Status != models.BookingPending {
		return domain.ValidationError{Field: "status",
			Msg: fmt.Sprintf("only pending bookings can be confirmed, current status is %s", b.Status)}
	}
	return s.withTx(func(tx *sql.Tx) error {
		if err := s.Trips.AdjustSeats(tx, b.TripID, -1); err != nil {
			return err
		}
		return s.Bookings.SetStatus(tx, b.ID, models.BookingPending, models.BookingConfirmed, true, models.PaymentPaid)
	})
}

func (s BookingService) cancel(b models.Booking) error {
	switch b.Status {
	case models.BookingCancelled:
		return domain.ValidationError{Msg: domain.ErrAlreadyCancelled.Error(), Err: domain.ErrAlreadyCancelled}
	case models.BookingCompleted:
		return domain.ValidationError{Field: "status", Msg: "completed bookings cannot be cancelled"}
	}

	if !b.SeatHeld {
		// Never confirmed, so no seat to give back.
		return wrapStorage(
			s.Bookings.SetStatus(nil, b.ID, b.Status, models.BookingCancelled, false, ""),
			"failed to cancel booking")
	}

	payment := ""
	if b.PaymentStatus == models.PaymentPaid {
		payment = models.PaymentRefunded
	}
	return s.withTx(func(tx *sql.Tx) error {
		if err := s.Trips.AdjustSeats(tx, b.TripID, +1); err != nil {
			return err
		}
		return s.Bookings.SetStatus(tx, b.ID, b.Status, models.BookingCancelled, false, payment)
	})
}

func (s BookingService) complete(b models.Booking) error {
	if b.Status != models.BookingConfirmed {
		return domain.ValidationError{Field: "status",
			Msg: fmt.Sprintf("only confirmed bookings can be completed, current status is %s", b.Status)}
	}
	// No inventory effect; the consumed seat stays on the ledger.
	return wrapStorage(
		s.Bookings.SetStatus(nil, b.ID, models.BookingConfirmed, models.BookingCompleted, b.SeatHeld, ""),
		"failed to complete booking")
}

func (s BookingService) withTx(fn func(tx *sql.Tx) error) error {
	db := s.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	tx, err := db.Begin()
	if err != nil {
		return domain.InternalError{Msg: "failed to begin transaction", Err: err}
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return wrapStorage(err, "transition failed")
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Msg: "failed to commit transaction", Err: err}
	}
	return nil
}
