package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers the venue availability endpoints.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, auth ...gin.HandlerFunc) {
	venues := rg.Group("/venues")
	venues.Use(auth...)
	{
		venues.POST("/:id/availability", controller.CheckAvailability) // POST /api/v1/venues/:id/availability
		venues.GET("/:id/booked-hours", controller.GetBookedHours)     // GET /api/v1/venues/:id/booked-hours?date=
	}
}
