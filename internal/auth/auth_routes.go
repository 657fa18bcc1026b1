package auth

import (
	"github.com/gin-gonic/gin"

	"paymaster/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/logout", middleware.AuthMiddleware(), handler.Logout)
	}
}
