package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPartnerRoutes sets up the public partner directories and vendor
// self-service routes
func SetupPartnerRoutes(r *gin.RouterGroup, partnerHandler *handlers.PartnerHandler, couponHandler *handlers.CouponHandler, jwtSecret string) {
	partners := r.Group("/partners")
	{
		partners.GET("", partnerHandler.ListPublic)
		// The public health and food directories; /directory/:category accepts
		// "health" as an alias for the medical category.
		partners.GET("/health", partnerHandler.HealthDirectory)
		partners.GET("/food", partnerHandler.FoodDirectory)
		partners.GET("/directory/:category", partnerHandler.Directory)
		partners.GET("/:id", partnerHandler.Get)
		partners.GET("/:id/coupons", couponHandler.ListByPartner)
	}

	protected := r.Group("/partners")
	protected.Use(middleware.AuthRequired(jwtSecret))
	{
		protected.POST("", partnerHandler.Register)
		protected.PUT("/:id", partnerHandler.Update)
		protected.POST("/:id/images", partnerHandler.UploadImage)
	}

	mine := r.Group("/users")
	mine.Use(middleware.AuthRequired(jwtSecret))
	{
		mine.GET("/partners", partnerHandler.ListMine)
	}
}
