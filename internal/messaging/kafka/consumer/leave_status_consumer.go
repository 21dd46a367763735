package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-backoffice/internal/bootstrap"
	"go-backoffice/internal/events"
)

// ConsumeLeaveStatusChanged turns leave status transitions into audit
// entries. Undecodable messages are committed and skipped, everything else
// stays on the topic until the audit write succeeds.
func ConsumeLeaveStatusChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave status event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		audit.Log(ctx, bootstrap.AuditLog{
			Action:  "LEAVE_STATUS_CHANGED",
			Message: "leave application changed status",
			Meta: map[string]any{
				"leave_id":    event.LeaveID,
				"company_id":  event.CompanyID,
				"employee_id": event.EmployeeID,
				"leave_type":  event.LeaveType,
				"from_status": event.FromStatus,
				"to_status":   event.ToStatus,
				"actor_id":    event.ActorID,
				"occurred_at": event.OccurredAt,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
			continue
		}

		log.Info("leave status transition recorded",
			zap.String("leave_id", event.LeaveID),
			zap.String("from_status", event.FromStatus),
			zap.String("to_status", event.ToStatus),
		)
	}
}
