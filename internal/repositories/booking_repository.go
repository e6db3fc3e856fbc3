package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type BookingRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `b.id, b.reference, b.trip_id, b.full_name, b.phone,
	b.status, b.payment_status, COALESCE(b.payment_link,''), b.seat_held,
	b.created_at, b.updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.Reference, &b.TripID, &b.FullName, &b.Phone,
		&b.Status, &b.PaymentStatus, &b.PaymentLink, &b.SeatHeld,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r BookingRepository) Create(b models.Booking) (models.Booking, error) {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	res, err := r.db().ExecContext(ctx, `
		INSERT INTO bookings (reference, trip_id, full_name, phone,
			status, payment_status, payment_link, seat_held, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, NOW(), NOW())
	`, b.Reference, b.TripID, b.FullName, b.Phone,
		b.Status, b.PaymentStatus, nullIfEmpty(b.PaymentLink))
	if err != nil {
		return models.Booking{}, classify("booking insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	return r.GetByID(id)
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	row := r.db().QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.Booking{}, classify("booking select", err)
	}
	return b, nil
}

// SetStatus writes the status transition through the given executor so the
// caller can bind it to the same transaction as the seat mutation. The write
// is conditional on the expected prior status: two racing transitions off the
// same read resolve in the store, and the loser gets a ConflictError so its
// transaction (seat adjustment included) rolls back. paymentStatus is left
// untouched when empty.
func (r BookingRepository) SetStatus(ex Execer, id int64, from, to string, seatHeld bool, paymentStatus string) error {
	if ex == nil {
		ex = r.db()
	}
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	sets := "status=?, seat_held=?, updated_at=NOW()"
	args := []any{to, seatHeld}
	if paymentStatus != "" {
		sets += ", payment_status=?"
		args = append(args, paymentStatus)
	}
	args = append(args, id, from)

	res, err := ex.ExecContext(ctx, `UPDATE bookings SET `+sets+` WHERE id=? AND status=?`, args...)
	if err != nil {
		return classify("booking status update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// A matched row always changes status (from != to), so zero rows means
	// the booking is gone or another transition got there first.
	current, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return domain.ConflictError{Resource: "booking",
		Msg: fmt.Sprintf("status is %s, expected %s", current.Status, from)}
}

func (r BookingRepository) SetPaymentLink(id int64, link string) error {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	_, err := r.db().ExecContext(ctx,
		`UPDATE bookings SET payment_link=?, updated_at=NOW() WHERE id=?`,
		nullIfEmpty(link), id)
	return classify("booking payment link", err)
}

// ListByPhone returns a requester's bookings, newest first, each joined to
// its trip when the trip still exists.
func (r BookingRepository) ListByPhone(phone string) ([]models.BookingWithTrip, error) {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	rows, err := r.db().QueryContext(ctx, joinedBookingQuery(
		"WHERE b.phone = ?", "ORDER BY b.created_at DESC, b.id DESC", ""),
		strings.TrimSpace(phone))
	if err != nil {
		return nil, classify("booking list by phone", err)
	}
	defer rows.Close()
	return collectJoined(rows)
}

// ListAll returns the admin view: filtered, newest first, paginated, with
// the total count of the filtered set.
func (r BookingRepository) ListAll(f models.BookingFilter, page, limit int) ([]models.BookingWithTrip, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "b.status = ?")
		args = append(args, s)
	}
	if f.TripID > 0 {
		where = append(where, "b.trip_id = ?")
		args = append(args, f.TripID)
	}
	cond := "WHERE " + strings.Join(where, " AND ")

	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	var total int
	if err := r.db().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings b `+cond, args...).Scan(&total); err != nil {
		return nil, 0, classify("booking count", err)
	}

	offset := (page - 1) * limit
	listArgs := append(append([]any{}, args...), limit, offset)
	rows, err := r.db().QueryContext(ctx, joinedBookingQuery(
		cond, "ORDER BY b.created_at DESC, b.id DESC", "LIMIT ? OFFSET ?"), listArgs...)
	if err != nil {
		return nil, 0, classify("booking list", err)
	}
	defer rows.Close()

	out, err := collectJoined(rows)
	return out, total, err
}

// Recent returns the newest n bookings for the dashboard.
func (r BookingRepository) Recent(n int) ([]models.BookingWithTrip, error) {
	if n < 1 {
		n = 10
	}
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	rows, err := r.db().QueryContext(ctx, joinedBookingQuery(
		"", "ORDER BY b.created_at DESC, b.id DESC", "LIMIT ?"), n)
	if err != nil {
		return nil, classify("booking recent", err)
	}
	defer rows.Close()
	return collectJoined(rows)
}

func joinedBookingQuery(cond, order, limit string) string {
	return fmt.Sprintf(`
		SELECT %s,
			t.id, t.origin, t.destination, t.departure_date, t.departure_time,
			t.capacity, t.available_seats, t.price, t.status, COALESCE(t.created_by,0),
			t.created_at, t.updated_at
		FROM bookings b
		LEFT JOIN trips t ON t.id = b.trip_id
		%s %s %s`, bookingColumns, cond, order, limit)
}

// collectJoined scans booking rows with their left-joined trip. A booking
// whose trip was deleted scans with a nil trip, never an error.
func collectJoined(rows *sql.Rows) ([]models.BookingWithTrip, error) {
	out := []models.BookingWithTrip{}
	for rows.Next() {
		var b models.Booking
		var (
			tripID                         sql.NullInt64
			origin, dest, depDate, depTime sql.NullString
			capacity, available            sql.NullInt64
			price, createdBy               sql.NullInt64
			status                         sql.NullString
			createdAt, updatedAt           sql.NullTime
		)
		if err := rows.Scan(
			&b.ID, &b.Reference, &b.TripID, &b.FullName, &b.Phone,
			&b.Status, &b.PaymentStatus, &b.PaymentLink, &b.SeatHeld,
			&b.CreatedAt, &b.UpdatedAt,
			&tripID, &origin, &dest, &depDate, &depTime,
			&capacity, &available, &price, &status, &createdBy,
			&createdAt, &updatedAt,
		); err != nil {
			return out, err
		}

		row := models.BookingWithTrip{Booking: b}
		if tripID.Valid {
			t := models.Trip{
				ID:             tripID.Int64,
				Origin:         origin.String,
				Destination:    dest.String,
				DepartureDate:  depDate.String,
				DepartureTime:  depTime.String,
				Capacity:       int(capacity.Int64),
				AvailableSeats: int(available.Int64),
				Price:          price.Int64,
				Status:         status.String,
				CreatedBy:      createdBy.Int64,
				CreatedAt:      createdAt.Time,
				UpdatedAt:      updatedAt.Time,
			}
			t.Status = t.EffectiveStatus()
			row.Trip = &t
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
