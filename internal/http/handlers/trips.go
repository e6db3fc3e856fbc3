package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// GET /api/trips
// Public search; completed and cancelled trips stay hidden unless a status
// filter asks for them.
func (a API) ListTrips(c *gin.Context) {
	trips, err := a.trips(c).List(models.TripFilter{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		Status:      c.Query("status"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, trips)
}

// GET /api/trips/:id
func (a API) GetTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	trip, err := a.trips(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, trip)
}

// POST /api/trips (admin)
func (a API) CreateTrip(c *gin.Context) {
	var req services.CreateTripInput
	if !BindJSONOrError(c, &req) {
		return
	}
	req.CreatedBy = middleware.UserID(c)

	trip, err := a.trips(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, trip)
}

// PUT /api/trips/:id (admin)
func (a API) UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.TripUpdate
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := a.trips(c).Update(id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, trip)
}

// DELETE /api/trips/:id (admin)
func (a API) DeleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.trips(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondMessage(c, http.StatusOK, "trip deleted successfully")
}

// GET /api/admin/trips
func (a API) AdminListTrips(c *gin.Context) {
	trips, err := a.trips(c).List(models.TripFilter{
		Status:     c.Query("status"),
		IncludeAll: true,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, trips)
}
