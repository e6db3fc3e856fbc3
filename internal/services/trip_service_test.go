package services

import (
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateTripValidation(t *testing.T) {
	svc := TripService{}
	base := CreateTripInput{
		Origin:        "Dakar",
		Destination:   "Touba",
		DepartureDate: "2025-06-01",
		DepartureTime: "08:00",
		Capacity:      50,
		Price:         2500,
	}

	cases := []struct {
		name   string
		mutate func(*CreateTripInput)
	}{
		{"missing origin", func(in *CreateTripInput) { in.Origin = "  " }},
		{"missing destination", func(in *CreateTripInput) { in.Destination = "" }},
		{"missing date", func(in *CreateTripInput) { in.DepartureDate = "" }},
		{"bad date", func(in *CreateTripInput) { in.DepartureDate = "01/06/2025" }},
		{"missing time", func(in *CreateTripInput) { in.DepartureTime = "" }},
		{"bad time", func(in *CreateTripInput) { in.DepartureTime = "8h00" }},
		{"zero capacity", func(in *CreateTripInput) { in.Capacity = 0 }},
		{"negative price", func(in *CreateTripInput) { in.Price = -1 }},
	}
	for _, tc := range cases {
		in := base
		tc.mutate(&in)
		if _, err := svc.Create(in); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateTripStartsWithFullAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO trips").
		WithArgs("Dakar", "Touba", "2025-06-01", "08:00",
			50, 50, int64(2500), models.TripScheduled, int64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("FROM trips").WillReturnRows(tripRow(50, 2500))

	svc := TripService{Trips: repositories.TripRepository{DB: db}}
	trip, err := svc.Create(CreateTripInput{
		Origin:        "Dakar",
		Destination:   "Touba",
		DepartureDate: "2025-06-01",
		DepartureTime: "08:00",
		Capacity:      50,
		Price:         2500,
		CreatedBy:     7,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if trip.AvailableSeats != trip.Capacity {
		t.Fatalf("new trip must start with all seats available, got %d/%d",
			trip.AvailableSeats, trip.Capacity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetDerivesFullStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips").WillReturnRows(tripRow(0, 2500))

	svc := TripService{Trips: repositories.TripRepository{DB: db}}
	trip, err := svc.Get(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if trip.Status != models.TripFull {
		t.Fatalf("expected derived full status, got %s", trip.Status)
	}
}

func TestUpdateTripRejectsSettingFull(t *testing.T) {
	svc := TripService{}
	full := models.TripFull
	if _, err := svc.Update(1, models.TripUpdate{Status: &full}); !domain.IsValidation(err) {
		t.Fatalf("full is derived and must not be settable, got %v", err)
	}

	bogus := "boarding"
	if _, err := svc.Update(1, models.TripUpdate{Status: &bogus}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}
