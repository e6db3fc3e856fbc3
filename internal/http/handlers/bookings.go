package handlers

import (
	"net/http"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings (public)
func (a API) CreateBooking(c *gin.Context) {
	var req services.CreateBookingInput
	if !BindJSONOrError(c, &req) {
		return
	}
	receipt, err := a.bookings(c).Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusCreated, receipt)
}

// GET /api/bookings
// Requester-scoped: bookings matching the authenticated user's phone.
func (a API) ListMyBookings(c *gin.Context) {
	user, err := a.auth(c).Me(middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	bookings, err := a.bookings(c).ListForPhone(user.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, bookings)
}

// GET /api/bookings/:id
func (a API) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondData(c, http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
func (a API) CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).Cancel(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    booking,
		"message": "booking cancelled successfully",
	})
}

// GET /api/bookings/:id/receipt
func (a API) BookingReceipt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pdf, filename, err := a.docs(c).GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
