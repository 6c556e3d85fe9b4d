package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the admin console
func SetupAdminRoutes(
	r *gin.RouterGroup,
	adminHandler *handlers.AdminHandler,
	campaignHandler *handlers.CampaignHandler,
	donationHandler *handlers.DonationHandler,
	paymentHandler *handlers.PaymentHandler,
	couponHandler *handlers.CouponHandler,
	partnerHandler *handlers.PartnerHandler,
	walletHandler *handlers.WalletHandler,
	jwtSecret string,
) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/analytics", adminHandler.Analytics)

		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/activate", adminHandler.ActivateUser)
		admin.PUT("/users/:id/suspend", adminHandler.SuspendUser)
		admin.PUT("/users/:id/assign-role", adminHandler.AssignRole)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.POST("/users/admins", adminHandler.CreateAdmin)

		admin.GET("/campaigns", campaignHandler.List)
		admin.PUT("/campaigns/:id/approve", campaignHandler.Approve)
		admin.PUT("/campaigns/:id/reject", campaignHandler.Reject)
		admin.PUT("/campaigns/:id/pause", campaignHandler.Pause)
		admin.PUT("/campaigns/:id/resume", campaignHandler.Resume)

		admin.GET("/donations", donationHandler.List)
		admin.POST("/donations/:id/refund", paymentHandler.Refund)

		admin.GET("/coupons", couponHandler.List)
		admin.GET("/coupons/:id/analytics", couponHandler.Analytics)
		admin.PUT("/coupons/:id/assign-partner", couponHandler.AssignPartner)
		admin.PUT("/coupons/:id/reject", couponHandler.Reject)

		admin.GET("/partners", partnerHandler.List)
		admin.PUT("/partners/:id/approve", partnerHandler.Approve)
		admin.PUT("/partners/:id/reject", partnerHandler.Reject)

		admin.GET("/wallets", walletHandler.List)
		admin.POST("/wallets/settle", walletHandler.Settle)

		admin.GET("/reports/donations", adminHandler.DonationReport)
		admin.GET("/reports/financial", adminHandler.FinancialReport)
	}
}
