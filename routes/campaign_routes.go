package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCampaignRoutes sets up campaign browsing and fundraiser routes
func SetupCampaignRoutes(r *gin.RouterGroup, campaignHandler *handlers.CampaignHandler, donationHandler *handlers.DonationHandler, jwtSecret string) {
	campaigns := r.Group("/campaigns")
	{
		campaigns.GET("", campaignHandler.ListActive)
		campaigns.GET("/:id", campaignHandler.Get)
		campaigns.GET("/:id/donations", donationHandler.ListByCampaign)
	}

	protected := r.Group("/campaigns")
	protected.Use(middleware.AuthRequired(jwtSecret))
	{
		protected.POST("", campaignHandler.Create)
		protected.PUT("/:id", campaignHandler.Update)
	}

	// The caller's own campaigns live under /users alongside the other
	// "my" listings.
	mine := r.Group("/users")
	mine.Use(middleware.AuthRequired(jwtSecret))
	{
		mine.GET("/campaigns", campaignHandler.ListMine)
	}
}
