package handlers

import (
	"net/http"

	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondData sends the standard success envelope.
func RespondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// RespondMessage sends a success envelope without a data payload.
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload")
		return false
	}
	return true
}
