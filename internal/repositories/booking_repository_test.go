package repositories

import (
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingRows(status string, seatHeld bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "reference", "trip_id", "full_name", "phone",
		"status", "payment_status", "payment_link", "seat_held",
		"created_at", "updated_at",
	}).AddRow(9, "ref-9", 3, "Awa Diop", "770000000",
		status, models.PaymentPaid, "", seatHeld, now, now)
}

func joinedRows(withTrip bool) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "reference", "trip_id", "full_name", "phone",
		"status", "payment_status", "payment_link", "seat_held",
		"created_at", "updated_at",
		"t_id", "t_origin", "t_destination", "t_departure_date", "t_departure_time",
		"t_capacity", "t_available_seats", "t_price", "t_status", "t_created_by",
		"t_created_at", "t_updated_at",
	})
	if withTrip {
		rows.AddRow(21, "ref-21", 3, "Awa Diop", "770000000",
			models.BookingConfirmed, models.PaymentPaid, "", true, now, now,
			3, "Dakar", "Touba", "2025-06-01", "08:00",
			50, 49, 2500, models.TripScheduled, 7, now, now)
	} else {
		rows.AddRow(22, "ref-22", 4, "Moussa Ndiaye", "780000000",
			models.BookingPending, models.PaymentPending, "https://pay.wave.com/x", false, now, now,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	}
	return rows
}

func TestSetStatusBindsExpectedPriorStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// The transition is a compare-and-set: the prior status rides the WHERE
	// clause so a stale read cannot overwrite a newer transition.
	mock.ExpectExec("UPDATE bookings").
		WithArgs(models.BookingConfirmed, true, models.PaymentPaid, int64(9), models.BookingPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepository{DB: db}
	if err := repo.SetStatus(nil, 9, models.BookingPending, models.BookingConfirmed, true, models.PaymentPaid); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatusLostRaceIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// The booking still exists but already moved on.
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(bookingRows(models.BookingCancelled, false))

	repo := BookingRepository{DB: db}
	err = repo.SetStatus(nil, 9, models.BookingConfirmed, models.BookingCancelled, false, "")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for a superseded transition, got %v", err)
	}
}

func TestSetStatusMissingBookingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := BookingRepository{DB: db}
	err = repo.SetStatus(nil, 9, models.BookingPending, models.BookingConfirmed, true, "")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListAllAppliesWindowAndTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	// page=2 limit=20 must translate to LIMIT 20 OFFSET 20.
	mock.ExpectQuery("LEFT JOIN trips").
		WithArgs(20, 20).
		WillReturnRows(joinedRows(true))

	repo := BookingRepository{DB: db}
	rows, total, err := repo.ListAll(models.BookingFilter{}, 2, 20)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 45 {
		t.Fatalf("expected total 45, got %d", total)
	}
	if len(rows) != 1 || rows[0].Trip == nil {
		t.Fatalf("expected one row with joined trip")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAllStatusFilterIsBound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(models.BookingPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("LEFT JOIN trips").
		WithArgs(models.BookingPending, 20, 0).
		WillReturnRows(joinedRows(false))

	repo := BookingRepository{DB: db}
	rows, _, err := repo.ListAll(models.BookingFilter{Status: models.BookingPending}, 1, 20)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestJoinedScanToleratesDeletedTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("LEFT JOIN trips").
		WillReturnRows(joinedRows(false))

	repo := BookingRepository{DB: db}
	rows, err := repo.ListByPhone("780000000")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Trip != nil {
		t.Fatalf("deleted trip should project as nil, got %+v", rows[0].Trip)
	}
	if rows[0].PaymentLink == "" {
		t.Fatalf("payment link lost in scan")
	}
}
