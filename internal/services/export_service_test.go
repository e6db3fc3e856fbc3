package services

import (
	"bytes"
	"testing"
	"time"

	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/xuri/excelize/v2"
)

func exportFixture() ExportService {
	now := time.Now()
	trip := models.Trip{
		ID: 1, Origin: "Dakar", Destination: "Touba",
		DepartureDate: "2025-06-01", DepartureTime: "08:00",
		Capacity: 50, AvailableSeats: 49, Price: 2500,
		Status: models.TripScheduled, CreatedAt: now, UpdatedAt: now,
	}
	booking := models.BookingWithTrip{
		Booking: models.Booking{
			ID: 5, Reference: "ref-5", TripID: 1,
			FullName: "Awa Diop", Phone: "770000000",
			Status: models.BookingConfirmed, PaymentStatus: models.PaymentPaid,
			CreatedAt: now, UpdatedAt: now,
		},
		Trip: &trip,
	}
	return ExportService{
		TripLoader:    func() ([]models.Trip, error) { return []models.Trip{trip}, nil },
		BookingLoader: func() ([]models.BookingWithTrip, error) { return []models.BookingWithTrip{booking}, nil },
	}
}

func exportJoinedRow(id int64, name string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "reference", "trip_id", "full_name", "phone",
		"status", "payment_status", "payment_link", "seat_held",
		"created_at", "updated_at",
		"t_id", "t_origin", "t_destination", "t_departure_date", "t_departure_time",
		"t_capacity", "t_available_seats", "t_price", "t_status", "t_created_by",
		"t_created_at", "t_updated_at",
	}).AddRow(id, "ref", 1, name, "770000000",
		models.BookingConfirmed, models.PaymentPaid, "", true, now, now,
		1, "Dakar", "Touba", "2025-06-01", "08:00",
		50, 48, 2500, models.TripScheduled, 7, now, now)
}

func TestLoadBookingsPagesThroughFullSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Two bookings with a one-row window: the loader must come back for the
	// second page instead of truncating the export.
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("LEFT JOIN trips").
		WithArgs(1, 0).
		WillReturnRows(exportJoinedRow(5, "Awa Diop"))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("LEFT JOIN trips").
		WithArgs(1, 1).
		WillReturnRows(exportJoinedRow(6, "Moussa Ndiaye"))

	svc := ExportService{
		Bookings: repositories.BookingRepository{DB: db},
		PageSize: 1,
	}
	rows, err := svc.loadBookings()
	if err != nil {
		t.Fatalf("loadBookings error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 bookings across pages, got %d", len(rows))
	}
	if rows[0].ID != 5 || rows[1].ID != 6 {
		t.Fatalf("page order lost: %d, %d", rows[0].ID, rows[1].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExportTripsWorkbook(t *testing.T) {
	svc := exportFixture()

	data, filename, err := svc.ExportTrips()
	if err != nil {
		t.Fatalf("ExportTrips returned error: %v", err)
	}
	if len(data) == 0 || filename == "" {
		t.Fatalf("ExportTrips returned empty output")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer f.Close()

	origin, err := f.GetCellValue("Trajets", "B5")
	if err != nil {
		t.Fatalf("cell read error: %v", err)
	}
	if origin != "Dakar" {
		t.Fatalf("first data row origin: got %q", origin)
	}
}

func TestExportReportHasBothSheets(t *testing.T) {
	svc := exportFixture()

	data, _, err := svc.ExportReport()
	if err != nil {
		t.Fatalf("ExportReport returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Trajets" || sheets[1] != "Réservations" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	client, err := f.GetCellValue("Réservations", "D5")
	if err != nil {
		t.Fatalf("cell read error: %v", err)
	}
	if client != "Awa Diop" {
		t.Fatalf("booking row client: got %q", client)
	}
}
