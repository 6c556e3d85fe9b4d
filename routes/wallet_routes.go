package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupWalletRoutes sets up vendor wallet routes
func SetupWalletRoutes(r *gin.RouterGroup, walletHandler *handlers.WalletHandler, jwtSecret string) {
	wallets := r.Group("/wallets")
	wallets.Use(middleware.AuthRequired(jwtSecret))
	{
		// By-id reads enforce owner-or-admin in the service.
		wallets.GET("/:id", walletHandler.GetByID)
		wallets.GET("/:id/transactions", walletHandler.TransactionsByID)
	}

	mine := r.Group("/wallets")
	mine.Use(middleware.AuthRequired(jwtSecret), middleware.VendorRequired())
	{
		mine.GET("/me", walletHandler.Get)
		mine.GET("/me/transactions", walletHandler.Transactions)
	}
}
