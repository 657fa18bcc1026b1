package payrollconfig

import (
	"github.com/gin-gonic/gin"

	"paymaster/internal/employee"
	"paymaster/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	configs := r.Group("/payroll-configurations")
	configs.Use(middleware.AuthMiddleware())
	{
		configs.POST("",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.Upsert,
		)
		// Updates share creation semantics, every change is a new version.
		configs.PUT("",
			middleware.RateLimitByUser(0.5, 1),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.Upsert,
		)
		configs.GET("/active",
			middleware.RateLimitByUser(2, 10),
			handler.GetActive,
		)
		configs.GET("/history",
			middleware.RateLimitByUser(1, 5),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.GetHistory,
		)
	}
}
