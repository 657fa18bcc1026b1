package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paymaster/internal/auth"
	"paymaster/internal/company"
	"paymaster/internal/employee"
	"paymaster/internal/messaging/kafka"
	"paymaster/internal/payroll"
	"paymaster/internal/payrollconfig"
	"paymaster/internal/salarystructure"
	"paymaster/internal/shared/mailer"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	mail := mailer.NewSMTPSender(mailer.ConfigFromEnv(), zap.L())

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	configRepo := payrollconfig.NewRepository(gormDB)
	structureRepo := salarystructure.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo)
	companyService := company.NewService(gormDB, companyRepo, employeeRepo, mail)
	employeeService := employee.NewService(gormDB, employeeRepo, outboxRepo, rdb, mail)
	configService := payrollconfig.NewService(gormDB, configRepo)
	structureService := salarystructure.NewService(structureRepo, configRepo)

	slipRenderer := payroll.NewSlipRenderer()
	generator := payroll.NewGenerator(gormDB, payrollRepo, configRepo, outboxRepo, mail, slipRenderer)
	payrollService := payroll.NewService(payrollRepo, generator, slipRenderer)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	employeeHandler := employee.NewHandler(employeeService)
	configHandler := payrollconfig.NewHandler(configService)
	structureHandler := salarystructure.NewHandler(structureService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		employee.RegisterRoutes(api, employeeHandler)
		payrollconfig.RegisterRoutes(api, configHandler)
		salarystructure.RegisterRoutes(api, structureHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}

	return nil
}
