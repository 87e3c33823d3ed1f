package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers the read-only catalog endpoints. The catalog
// is authored elsewhere; this service only serves it to the quoting flow.
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller, auth ...gin.HandlerFunc) {
	catalog := rg.Group("")
	catalog.Use(auth...)
	{
		catalog.GET("/packages", controller.GetPackages)    // GET /api/v1/packages
		catalog.GET("/packages/:id", controller.GetPackage) // GET /api/v1/packages/:id
		catalog.GET("/services", controller.GetServices)    // GET /api/v1/services
		catalog.GET("/seasons", controller.GetSeasons)      // GET /api/v1/seasons
		catalog.GET("/venues", controller.GetVenues)        // GET /api/v1/venues
	}
}
