package company

import (
	"github.com/gin-gonic/gin"

	"paymaster/internal/employee"
	"paymaster/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	// Public self-service registration.
	r.POST("/companies/register", middleware.RateLimitByIP(0.1, 2), handler.Register)

	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("/me",
			middleware.RateLimitByUser(2, 10),
			handler.GetMe,
		)
		companies.GET("",
			middleware.RateLimitByUser(1, 5),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.GetAll,
		)
		companies.GET("/:id",
			middleware.RateLimitByUser(2, 10),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.GetByID,
		)
		companies.PUT("/:id",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.Update,
		)
		companies.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.Delete,
		)
	}
}
