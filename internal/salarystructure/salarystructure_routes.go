package salarystructure

import (
	"github.com/gin-gonic/gin"

	"paymaster/internal/employee"
	"paymaster/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.Create,
		)
		structures.PUT("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.Update,
		)
		structures.GET("/:employeeId",
			middleware.RateLimitByUser(2, 10),
			handler.GetByEmployee,
		)
	}
}
