package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCouponRoutes sets up the sponsorship catalogue, purchase and
// redemption routes
func SetupCouponRoutes(r *gin.RouterGroup, couponHandler *handlers.CouponHandler, walletHandler *handlers.WalletHandler, jwtSecret string) {
	coupons := r.Group("/coupons")
	{
		coupons.GET("/packages", couponHandler.ListPackages)
		coupons.GET("/code/:code", couponHandler.GetByCode)
		coupons.POST("/validate", couponHandler.Validate)
	}

	protected := r.Group("/coupons")
	protected.Use(middleware.AuthRequired(jwtSecret))
	{
		protected.POST("/purchase", couponHandler.Purchase)
		protected.POST("/purchase/verify", couponHandler.VerifyPurchase)
		protected.GET("/my-coupons", couponHandler.ListMine)
		protected.GET("/:id", couponHandler.Get)
		protected.POST("/send", couponHandler.Send)
	}

	managed := r.Group("/coupons")
	managed.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		managed.POST("", couponHandler.Create)
		managed.PUT("/:id", couponHandler.Update)
		managed.DELETE("/:id", couponHandler.Delete)
	}

	vendor := r.Group("/coupons")
	vendor.Use(middleware.AuthRequired(jwtSecret), middleware.VendorRequired())
	{
		vendor.POST("/redeem", couponHandler.Redeem)
		vendor.POST("/:id/add-to-wallet", walletHandler.CreditCoupon)
	}
}
