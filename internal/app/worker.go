package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"paymaster/internal/messaging/kafka"
	"paymaster/internal/messaging/kafka/producer"
	"paymaster/internal/payroll"
	"paymaster/internal/payrollconfig"
	"paymaster/internal/shared/connection"
	"paymaster/internal/shared/mailer"
)

// RunWorker hosts the two background loops: the monthly payroll generator
// and the outbox publisher.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

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
	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)
	mail := mailer.NewSMTPSender(mailer.ConfigFromEnv(), logger)

	generator := payroll.NewGenerator(
		gormDB,
		payroll.NewRepository(gormDB),
		payrollconfig.NewRepository(gormDB),
		outboxRepo,
		mail,
		payroll.NewSlipRenderer(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runGeneratorLoop(ctx, generator, generationInterval(), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// runGeneratorLoop fires once at startup, then on every tick. Each pass is
// idempotent for the current month.
func runGeneratorLoop(ctx context.Context, generator *payroll.Generator, interval time.Duration, logger *zap.Logger) {
	run := func() {
		if _, err := generator.GenerateAll(ctx); err != nil {
			logger.Error("payroll generation pass failed", zap.Error(err))
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

func generationInterval() time.Duration {
	raw := os.Getenv("PAYROLL_GENERATION_INTERVAL")
	if raw == "" {
		return 24 * time.Hour
	}
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		return 24 * time.Hour
	}
	return interval
}
