package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"paymaster/internal/employee"
	"paymaster/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RoleMiddleware(employee.RoleAdmin),
			handler.GetAll,
		)
		payrolls.GET("/employee/:employeeId",
			middleware.RateLimitByUser(2, 10),
			handler.GetByEmployee,
		)
		payrolls.GET("/download/:payrollId",
			middleware.RateLimitByUser(1, 5),
			handler.DownloadSlip,
		)

		if redisClient != nil {
			payrolls.POST("/generate",
				middleware.RateLimitByUser(0.2, 1),
				middleware.RoleMiddleware(employee.RoleAdmin),
				middleware.Idempotency(redisClient),
				handler.Generate,
			)
		} else {
			payrolls.POST("/generate",
				middleware.RateLimitByUser(0.2, 1),
				middleware.RoleMiddleware(employee.RoleAdmin),
				handler.Generate,
			)
		}
	}
}
