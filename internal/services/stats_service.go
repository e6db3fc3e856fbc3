package services

import (
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

type StatsService struct {
	Stats     repositories.StatsRepository
	Bookings  repositories.BookingRepository
	RequestID string
}

// Dashboard assembles the admin landing counters plus the latest bookings.
func (s StatsService) Dashboard() (models.DashboardStats, error) {
	stats, err := s.Stats.Counters(utils.Today())
	if err != nil {
		return models.DashboardStats{}, wrapStorage(err, "failed to load stats")
	}

	recent, err := s.Bookings.Recent(10)
	if err != nil {
		return models.DashboardStats{}, wrapStorage(err, "failed to load recent bookings")
	}
	stats.RecentBookings = recent
	return stats, nil
}
