package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookable/handlers"
)

// RegisterRoutes wires the public booking API onto the router.
func RegisterRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	RegisterHealthRoute(r)

	api := r.Group("/api")
	{
		api.GET("/config", h.GetConfig)
		api.GET("/slots", h.GetSlots)
		api.POST("/book", h.CreateBooking)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
