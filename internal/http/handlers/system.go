package handlers

import (
	"net/http"

	intconfig "backend/internal/config"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func Health(c *gin.Context) {
	RespondData(c, http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		RespondError(c, http.StatusInternalServerError, "database unreachable")
		return
	}
	RespondData(c, http.StatusOK, gin.H{"database": "ok"})
}

// POST /api/webhooks/wave
// Payment confirmations are handled manually by admins through the
// dashboard; this endpoint only acknowledges delivery.
func WaveWebhook(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"message":  "Wave webhook endpoint - not yet configured",
	})
}
