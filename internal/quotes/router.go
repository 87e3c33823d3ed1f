package quotes

import (
	"github.com/gin-gonic/gin"
)

// SetupQuoteRoutes registers the wizard session endpoints and the stateless
// price preview.
func SetupQuoteRoutes(rg *gin.RouterGroup, controller *Controller, auth ...gin.HandlerFunc) {
	quotes := rg.Group("/quotes")
	quotes.Use(auth...)
	{
		quotes.POST("/sessions", controller.OpenSession)                   // POST /api/v1/quotes/sessions
		quotes.GET("/sessions/:id", controller.GetSession)                 // GET /api/v1/quotes/sessions/:id
		quotes.PUT("/sessions/:id/event-details", controller.SetEventDetails) // PUT /api/v1/quotes/sessions/:id/event-details
		quotes.PUT("/sessions/:id/package", controller.SelectPackage)      // PUT /api/v1/quotes/sessions/:id/package
		quotes.PUT("/sessions/:id/services", controller.MutateServices)    // PUT /api/v1/quotes/sessions/:id/services
		quotes.PUT("/sessions/:id/discount", controller.ApplyDiscount)     // PUT /api/v1/quotes/sessions/:id/discount
		quotes.POST("/sessions/:id/finalize", controller.Finalize)         // POST /api/v1/quotes/sessions/:id/finalize

		quotes.POST("/calculate", controller.Calculate) // POST /api/v1/quotes/calculate
	}
}
