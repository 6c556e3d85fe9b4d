package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDonationRoutes sets up the donation checkout and history routes
func SetupDonationRoutes(r *gin.RouterGroup, donationHandler *handlers.DonationHandler, paymentHandler *handlers.PaymentHandler, jwtSecret string) {
	donations := r.Group("/donations")
	donations.Use(middleware.OptionalAuth(jwtSecret))
	{
		// Guest checkout is allowed; a present token attaches the donor.
		donations.POST("", donationHandler.Create)
		donations.GET("/:id", donationHandler.Get)
		donations.GET("/:id/receipt", donationHandler.Receipt)
	}

	protected := r.Group("/donations")
	protected.Use(middleware.AuthRequired(jwtSecret))
	{
		protected.POST("/test", donationHandler.CreateTest)
	}

	mine := r.Group("/users")
	mine.Use(middleware.AuthRequired(jwtSecret))
	{
		mine.GET("/donations", donationHandler.ListMine)
		mine.GET("/donations/report", donationHandler.MyReport)
	}

	admin := r.Group("/donations")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("/:id/refund", paymentHandler.Refund)
	}
}
