package services

import (
	"fmt"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// TripService owns trip capacity and availability. Seat counters move only
// through TripRepository.AdjustSeats, which the booking lifecycle drives.
type TripService struct {
	Trips     repositories.TripRepository
	RequestID string
}

type CreateTripInput struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	Capacity      int    `json:"capacity"`
	Price         int64  `json:"price"`
	CreatedBy     int64  `json:"-"`
}

func (s TripService) Create(in CreateTripInput) (models.Trip, error) {
	in.Origin = utils.NormalizeSpace(in.Origin)
	in.Destination = utils.NormalizeSpace(in.Destination)

	switch {
	case in.Origin == "":
		return models.Trip{}, domain.ValidationError{Field: "origin", Msg: "required"}
	case in.Destination == "":
		return models.Trip{}, domain.ValidationError{Field: "destination", Msg: "required"}
	case in.DepartureDate == "":
		return models.Trip{}, domain.ValidationError{Field: "departure_date", Msg: "required"}
	case in.DepartureTime == "":
		return models.Trip{}, domain.ValidationError{Field: "departure_time", Msg: "required"}
	case in.Capacity < 1:
		return models.Trip{}, domain.ValidationError{Field: "capacity", Msg: "must be at least 1"}
	case in.Price < 0:
		return models.Trip{}, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if _, err := utils.ParseDate(in.DepartureDate); err != nil {
		return models.Trip{}, domain.ValidationError{Field: "departure_date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if !utils.ValidTimeOfDay(in.DepartureTime) {
		return models.Trip{}, domain.ValidationError{Field: "departure_time", Msg: "expected HH:MM"}
	}

	trip, err := s.Trips.Create(models.Trip{
		Origin:         in.Origin,
		Destination:    in.Destination,
		DepartureDate:  in.DepartureDate,
		DepartureTime:  in.DepartureTime,
		Capacity:       in.Capacity,
		AvailableSeats: in.Capacity,
		Price:          in.Price,
		Status:         models.TripScheduled,
		CreatedBy:      in.CreatedBy,
	})
	if err != nil {
		return models.Trip{}, wrapStorage(err, "failed to create trip")
	}

	utils.LogEvent(s.RequestID, "trips", "create",
		fmt.Sprintf("trip_id=%d route=%s-%s seats=%d", trip.ID, trip.Origin, trip.Destination, trip.Capacity))
	return trip, nil
}

func (s TripService) Get(id int64) (models.Trip, error) {
	trip, err := s.Trips.GetByID(id)
	if err != nil {
		return models.Trip{}, wrapStorage(err, "failed to load trip")
	}
	trip.Status = trip.EffectiveStatus()
	return trip, nil
}

func (s TripService) List(f models.TripFilter) ([]models.Trip, error) {
	trips, err := s.Trips.List(f)
	if err != nil {
		return nil, wrapStorage(err, "failed to list trips")
	}
	return trips, nil
}

func (s TripService) Update(id int64, u models.TripUpdate) (models.Trip, error) {
	if u.Status != nil {
		switch *u.Status {
		case models.TripScheduled, models.TripCompleted, models.TripCancelled:
		case models.TripFull:
			return models.Trip{}, domain.ValidationError{Field: "status", Msg: "full is derived from seat count"}
		default:
			return models.Trip{}, domain.ValidationError{Field: "status", Msg: "unknown trip status"}
		}
	}
	if u.Price != nil && *u.Price < 0 {
		return models.Trip{}, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}

	trip, err := s.Trips.Update(id, u)
	if err != nil {
		return models.Trip{}, wrapStorage(err, "failed to update trip")
	}
	utils.LogEvent(s.RequestID, "trips", "update", fmt.Sprintf("trip_id=%d", id))
	trip.Status = trip.EffectiveStatus()
	return trip, nil
}

func (s TripService) Delete(id int64) error {
	if err := s.Trips.Delete(id); err != nil {
		return wrapStorage(err, "failed to delete trip")
	}
	utils.LogEvent(s.RequestID, "trips", "delete", fmt.Sprintf("trip_id=%d", id))
	return nil
}

// wrapStorage keeps domain errors intact and hides raw driver errors from
// the boundary as a generic internal failure.
func wrapStorage(err error, msg string) error {
	if err == nil {
		return nil
	}
	if domain.IsNotFound(err) || domain.IsValidation(err) || domain.IsConflict(err) ||
		domain.IsTimeout(err) || domain.IsUnauthorized(err) || domain.IsForbidden(err) {
		return err
	}
	return domain.InternalError{Msg: msg, Err: err}
}
