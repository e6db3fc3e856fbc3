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

type TripRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, origin, destination, departure_date, departure_time,
	capacity, available_seats, price, status, COALESCE(created_by,0), created_at, updated_at`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID, &t.Origin, &t.Destination, &t.DepartureDate, &t.DepartureTime,
		&t.Capacity, &t.AvailableSeats, &t.Price, &t.Status, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r TripRepository) Create(t models.Trip) (models.Trip, error) {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	res, err := r.db().ExecContext(ctx, `
		INSERT INTO trips (origin, destination, departure_date, departure_time,
			capacity, available_seats, price, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, t.Origin, t.Destination, t.DepartureDate, t.DepartureTime,
		t.Capacity, t.AvailableSeats, t.Price, t.Status, t.CreatedBy)
	if err != nil {
		return models.Trip{}, classify("trip insert", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Trip{}, err
	}
	return r.GetByID(id)
}

func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	row := r.db().QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id=? LIMIT 1`, id)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	if err != nil {
		return models.Trip{}, classify("trip select", err)
	}
	return t, nil
}

// List applies public search filters. Seat-status filters translate to the
// stored status plus the seat counter, since "full" is never persisted.
func (r TripRepository) List(f models.TripFilter) ([]models.Trip, error) {
	where := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Origin); s != "" {
		where = append(where, "LOWER(origin) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(f.Destination); s != "" {
		where = append(where, "LOWER(destination) LIKE ?")
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(f.Date); s != "" {
		where = append(where, "departure_date = ?")
		args = append(args, s)
	}

	switch strings.TrimSpace(f.Status) {
	case models.TripScheduled:
		where = append(where, "status = ? AND available_seats > 0")
		args = append(args, models.TripScheduled)
	case models.TripFull:
		where = append(where, "status = ? AND available_seats = 0")
		args = append(args, models.TripScheduled)
	case models.TripCompleted, models.TripCancelled:
		where = append(where, "status = ?")
		args = append(args, f.Status)
	case "":
		if !f.IncludeAll {
			// Public default hides completed/cancelled; stored "scheduled"
			// already covers both the scheduled and derived-full views.
			where = append(where, "status = ?")
			args = append(args, models.TripScheduled)
		}
	default:
		return []models.Trip{}, domain.ValidationError{Field: "status", Msg: "unknown trip status"}
	}

	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM trips WHERE %s ORDER BY departure_date ASC, departure_time ASC, id ASC`,
		tripColumns, strings.Join(where, " AND "))
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("trip list", err)
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		t.Status = t.EffectiveStatus()
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update performs a partial merge over the mutable non-seat fields.
// Capacity and available_seats are deliberately absent: seats move only
// through AdjustSeats.
func (r TripRepository) Update(id int64, u models.TripUpdate) (models.Trip, error) {
	sets := []string{}
	args := []any{}

	if u.Origin != nil {
		sets = append(sets, "origin=?")
		args = append(args, strings.TrimSpace(*u.Origin))
	}
	if u.Destination != nil {
		sets = append(sets, "destination=?")
		args = append(args, strings.TrimSpace(*u.Destination))
	}
	if u.DepartureDate != nil {
		sets = append(sets, "departure_date=?")
		args = append(args, strings.TrimSpace(*u.DepartureDate))
	}
	if u.DepartureTime != nil {
		sets = append(sets, "departure_time=?")
		args = append(args, strings.TrimSpace(*u.DepartureTime))
	}
	if u.Price != nil {
		sets = append(sets, "price=?")
		args = append(args, *u.Price)
	}
	if u.Status != nil {
		sets = append(sets, "status=?")
		args = append(args, strings.TrimSpace(*u.Status))
	}
	if len(sets) == 0 {
		return r.GetByID(id)
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	res, err := r.db().ExecContext(ctx,
		`UPDATE trips SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
	if err != nil {
		return models.Trip{}, classify("trip update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return models.Trip{}, err
		}
	}
	return r.GetByID(id)
}

// Delete removes a trip only when no live (non-cancelled) booking still
// references it. The guard and the delete are one statement so an admin
// delete cannot race a confirmation into an orphaned seat ledger.
func (r TripRepository) Delete(id int64) error {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	res, err := r.db().ExecContext(ctx, `
		DELETE FROM trips
		WHERE id=? AND NOT EXISTS (
			SELECT 1 FROM bookings WHERE trip_id=? AND status <> ?
		)
	`, id, id, models.BookingCancelled)
	if err != nil {
		return classify("trip delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return domain.ConflictError{Resource: "trip", Msg: "active bookings reference this trip"}
	}
	return nil
}

// AdjustSeats is the sole legal mutation path for available_seats: one
// conditional UPDATE, so two confirmations racing for the last seat resolve
// inside the store and exactly one wins. RowsAffected()==0 means the guard
// rejected the move (or the trip is gone); the follow-up read disambiguates.
func (r TripRepository) AdjustSeats(ex Execer, tripID int64, delta int) error {
	if delta == 0 {
		return nil
	}
	if ex == nil {
		ex = r.db()
	}

	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	res, err := ex.ExecContext(ctx, `
		UPDATE trips
		SET available_seats = available_seats + ?, updated_at = NOW()
		WHERE id = ?
		  AND available_seats + ? >= 0
		  AND available_seats + ? <= capacity
	`, delta, tripID, delta, delta)
	if err != nil {
		return classify("seat adjust", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err := r.GetByID(tripID); err != nil {
		return err
	}
	if delta < 0 {
		return domain.ConflictError{Resource: "trip", Msg: domain.ErrNoSeats.Error(), Err: domain.ErrNoSeats}
	}
	return domain.ConflictError{Resource: "trip", Msg: "seats already at capacity"}
}
