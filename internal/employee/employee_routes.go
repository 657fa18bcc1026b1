package employee

import (
	"github.com/gin-gonic/gin"

	"paymaster/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	// Token is delivered by email, the caller has no session yet.
	r.POST("/employees/set-password", middleware.RateLimitByIP(0.5, 3), handler.SetPassword)

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware(RoleAdmin),
			handler.Create,
		)
		employees.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RoleMiddleware(RoleAdmin),
			handler.GetAll,
		)
		employees.GET("/options",
			middleware.RateLimitByUser(2, 10),
			handler.GetOptions,
		)
		employees.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			handler.GetByID,
		)
		employees.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RoleMiddleware(RoleAdmin),
			handler.Update,
		)
		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RoleMiddleware(RoleAdmin),
			handler.Delete,
		)
		employees.POST("/:id/deactivate",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RoleMiddleware(RoleAdmin),
			handler.Deactivate,
		)
	}
}
