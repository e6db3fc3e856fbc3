package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"error":   "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	handler := h.New(env)
	authed := middleware.Authenticate([]byte(env.JWTSecret))
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.GET("/me", authed, handler.Me)

		trips := api.Group("/trips")
		trips.GET("", handler.ListTrips)
		trips.GET("/:id", handler.GetTrip)
		trips.POST("", authed, adminOnly, handler.CreateTrip)
		trips.PUT("/:id", authed, adminOnly, handler.UpdateTrip)
		trips.DELETE("/:id", authed, adminOnly, handler.DeleteTrip)

		bookings := api.Group("/bookings")
		bookings.POST("", handler.CreateBooking)
		bookings.GET("", authed, handler.ListMyBookings)
		bookings.GET("/:id", authed, handler.GetBooking)
		bookings.POST("/:id/cancel", authed, handler.CancelBooking)
		bookings.GET("/:id/receipt", authed, handler.BookingReceipt)

		admin := api.Group("/admin")
		admin.POST("/promote-user", handler.PromoteUser)
		protected := admin.Group("", authed, adminOnly)
		protected.GET("/stats", handler.AdminStats)
		protected.GET("/trips", handler.AdminListTrips)
		protected.GET("/bookings", handler.AdminListBookings)
		protected.POST("/bookings/:id/status", handler.AdminSetBookingStatus)
		protected.GET("/export/trips", handler.ExportTrips)
		protected.GET("/export/bookings", handler.ExportBookings)
		protected.GET("/export/report", handler.ExportReport)

		webhooks := api.Group("/webhooks")
		webhooks.POST("/wave", h.WaveWebhook)
	}

	return r
}
