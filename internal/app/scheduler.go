package app

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go-backoffice/internal/leave"
	"go-backoffice/internal/messaging/kafka"
	"go-backoffice/internal/scheduler"
	"go-backoffice/internal/shared/connection"
	"go-backoffice/internal/shared/counter"
	"go-backoffice/internal/shared/storage"
)

// RunScheduler starts the cron jobs and blocks until SIGINT/SIGTERM. The
// completion sweep writes outbox rows like any other transition, so the
// worker relays its events without extra wiring here.
func RunScheduler() error {
	logger := zap.L().Named("app.scheduler")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	files, err := storage.NewLocalFileStore(uploadDir)
	if err != nil {
		return err
	}

	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	leaveService := leave.NewServiceWithOutbox(sqlDB, leaveRepo, files, counterRepo, outboxRepo, logger)

	sched := scheduler.New(leaveService, logger)
	if err := sched.Start(os.Getenv("SCHEDULER_SWEEP_SPEC")); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("scheduler shutting down")
	sched.Stop()

	return nil
}
