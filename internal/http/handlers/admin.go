package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/stats
func (a API) AdminStats(c *gin.Context) {
	stats, err := a.stats(c).Dashboard()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, stats)
}

// GET /api/admin/bookings
func (a API) AdminListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	tripID, _ := strconv.ParseInt(c.Query("trip_id"), 10, 64)

	rows, pagination, err := a.bookings(c).ListAll(models.BookingFilter{
		Status: c.Query("status"),
		TripID: tripID,
	}, page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       rows,
		"pagination": pagination,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// POST /api/admin/bookings/:id/status
func (a API) AdminSetBookingStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	booking, err := a.bookings(c).SetStatus(id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, booking)
}

// GET /api/admin/export/trips
func (a API) ExportTrips(c *gin.Context) {
	a.sendWorkbook(c)(a.exports(c).ExportTrips())
}

// GET /api/admin/export/bookings
func (a API) ExportBookings(c *gin.Context) {
	a.sendWorkbook(c)(a.exports(c).ExportBookings())
}

// GET /api/admin/export/report
func (a API) ExportReport(c *gin.Context) {
	a.sendWorkbook(c)(a.exports(c).ExportReport())
}

func (a API) sendWorkbook(c *gin.Context) func([]byte, string, error) {
	return func(data []byte, filename string, err error) {
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	}
}
