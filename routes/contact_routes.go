package routes

import (
	"carefund/internal/handlers"
	"carefund/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes sets up the public contact form and its admin console
func SetupContactRoutes(r *gin.RouterGroup, contactHandler *handlers.ContactHandler, jwtSecret string) {
	r.POST("/contact", contactHandler.Submit)

	admin := r.Group("/contact")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("", contactHandler.List)
		admin.GET("/:id", contactHandler.Get)
		admin.POST("/:id/respond", contactHandler.Respond)
		admin.PUT("/:id/close", contactHandler.Close)
		admin.DELETE("/:id", contactHandler.Delete)
	}
}
