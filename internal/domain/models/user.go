package models

import "time"

// Roles. Students book; admins operate trips and the dashboard.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DashboardStats aggregates the admin landing counters.
type DashboardStats struct {
	TotalUsers        int               `json:"totalUsers"`
	TotalTrips        int               `json:"totalTrips"`
	TotalBookings     int               `json:"totalBookings"`
	CompletedBookings int               `json:"completedBookings"`
	UpcomingTrips     int               `json:"upcomingTrips"`
	Revenue           int64             `json:"revenue"`
	RecentBookings    []BookingWithTrip `json:"recentBookings"`
}
