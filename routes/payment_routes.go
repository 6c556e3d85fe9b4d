package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes sets up gateway order and verification routes
func SetupPaymentRoutes(r *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, jwtSecret string) {
	payments := r.Group("/payments")
	{
		payments.GET("/methods", paymentHandler.Methods)
		// The verify callbacks are unauthenticated: the gateway redirect may
		// not carry the bearer token, and the signature proves provenance.
		payments.POST("/verify", paymentHandler.Verify)
		payments.POST("/verify/:id", paymentHandler.VerifyByID)
		payments.POST("/razorpay/verify", paymentHandler.RazorpayVerify)
		payments.POST("/stripe/confirm", paymentHandler.StripeConfirm)
	}

	protected := r.Group("/payments")
	protected.Use(middleware.AuthRequired(jwtSecret))
	{
		protected.POST("/create-order", paymentHandler.CreateOrder)
		// create-intent and process are aliases kept for the web client.
		protected.POST("/create-intent", paymentHandler.CreateOrder)
		protected.POST("/process", paymentHandler.CreateOrder)
		protected.POST("/razorpay/create-order", paymentHandler.RazorpayCreateOrder)
		protected.POST("/stripe/create-intent", paymentHandler.StripeCreateIntent)
		protected.POST("/upi/process", paymentHandler.UPIProcess)
		protected.GET("/history", paymentHandler.ListMine)
		protected.GET("/:id", paymentHandler.Get)
	}

	admin := r.Group("/payments")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("/:id/refund", paymentHandler.RefundByPayment)
	}
}
