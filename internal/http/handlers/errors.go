package handlers

import (
	"log"
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Inventory
// conflicts surface as 409; unexpected storage errors are logged and
// collapsed into a generic 500 so internals never leak.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error())
	case domain.IsTimeout(err):
		log.Printf("[ERROR] request_id=%s storage timeout: %v", middleware.GetRequestID(c), err)
		RespondError(c, http.StatusInternalServerError, "storage timeout, please retry")
	default:
		log.Printf("[ERROR] request_id=%s unhandled: %v", middleware.GetRequestID(c), err)
		RespondError(c, http.StatusInternalServerError, "internal server error")
	}
}
