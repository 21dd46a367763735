package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-backoffice/internal/bootstrap"
	"go-backoffice/internal/events"
	"go-backoffice/internal/messaging/kafka/consumer"
	"go-backoffice/internal/shared/connection"
)

// RunConsumer starts both event consumers and blocks until SIGINT/SIGTERM.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	leaveReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeaveStatusChangedTopic,
		GroupID:        "go-backoffice-leave-audit",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer leaveReader.Close()

	employeeReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "go-backoffice-employee-cache",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer employeeReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	audit := bootstrap.NewStdoutAuditLogger()
	go consumer.ConsumeLeaveStatusChanged(ctx, leaveReader, audit, logger)
	go consumer.ConsumeEmployeeLifecycle(ctx, employeeReader, rdb, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
