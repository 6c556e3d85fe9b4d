package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up authentication and profile routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/forgotpassword", authHandler.ForgotPassword)
		auth.PUT("/resetpassword", authHandler.ResetPassword)
		auth.GET("/verify-email/:token", authHandler.VerifyEmail)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthRequired(jwtSecret))
	{
		protected.GET("/me", authHandler.GetProfile)
		protected.PUT("/updatedetails", authHandler.UpdateProfile)
		protected.PUT("/updatepassword", authHandler.ChangePassword)
		protected.POST("/request-verification", authHandler.RequestEmailVerification)
		protected.POST("/logout", authHandler.Logout)
	}
}
