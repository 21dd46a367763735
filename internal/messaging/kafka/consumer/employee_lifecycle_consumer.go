package consumer

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-backoffice/internal/employee"
	"go-backoffice/internal/events"
)

// ConsumeEmployeeLifecycle drops the cached employee picker options for a
// company whenever another instance registers an employee, so every API node
// serves a fresh list on the next read.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		key := employee.GetEmployeeOptionsKey(event.CompanyID)
		if err := rdb.Del(ctx, key).Err(); err != nil && err != redis.Nil {
			log.Error("invalidate employee options cache failed",
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("employee options cache invalidated",
			zap.String("company_id", event.CompanyID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
