package repositories

import (
	"database/sql"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"
)

type StatsRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func (r StatsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Counters gathers the dashboard aggregates in one round trip per counter.
// today is YYYY-MM-DD and bounds the upcoming-trip count.
func (r StatsRepository) Counters(today string) (models.DashboardStats, error) {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	var s models.DashboardStats
	db := r.db()

	counts := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&s.TotalUsers, `SELECT COUNT(*) FROM users`, nil},
		{&s.TotalTrips, `SELECT COUNT(*) FROM trips`, nil},
		{&s.TotalBookings, `SELECT COUNT(*) FROM bookings`, nil},
		{&s.CompletedBookings, `SELECT COUNT(*) FROM bookings WHERE status=?`,
			[]any{models.BookingCompleted}},
		{&s.UpcomingTrips, `SELECT COUNT(*) FROM trips WHERE departure_date>=? AND status<>?`,
			[]any{today, models.TripCancelled}},
	}
	for _, c := range counts {
		if err := db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return s, classify("stats count", err)
		}
	}

	// Revenue is the price sum over paid bookings whose trip still exists.
	err := db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(t.price),0)
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		WHERE b.payment_status = ?
	`, models.PaymentPaid).Scan(&s.Revenue)
	if err != nil {
		return s, classify("stats revenue", err)
	}
	return s, nil
}
