package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paymaster/internal/company"
	"paymaster/internal/employee"
	"paymaster/internal/messaging/kafka"
	"paymaster/internal/middleware"
	"paymaster/internal/payroll"
	"paymaster/internal/payrollconfig"
	"paymaster/internal/salarystructure"
	"paymaster/internal/shared/connection"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	return registerModules(router, gormDB, redisClient)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&company.Company{},
		&employee.Employee{},
		&payrollconfig.PayrollConfiguration{},
		&salarystructure.SalaryStructure{},
		&payroll.Payroll{},
		&kafka.OutboxEvent{},
	)
}
