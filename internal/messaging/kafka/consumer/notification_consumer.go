package consumer

import (
	"context"
	"encoding/json"

	"github.com/heyyrintu/hrms-sub001/internal/events"
	"github.com/heyyrintu/hrms-sub001/internal/notification"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeNotificationRequested persists notification fan-outs relayed
// through the outbox. Delivery is best-effort: undecodable messages and
// failed deliveries are logged, committed and dropped.
func ConsumeNotificationRequested(
	ctx context.Context,
	reader MessageReader,
	sink notification.Sink,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.NotificationRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.TenantID == "" {
			log.Error("decode notification event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := contextutil.WithTenantID(contextutil.WithRequestID(ctx, event.RequestID), event.TenantID)
		if err := sink.Deliver(msgCtx, notification.FromEvent(event)); err != nil {
			log.Error("deliver notification failed",
				zap.String("request_id", event.RequestID),
				zap.String("tenant_id", event.TenantID),
				zap.String("type", event.Type),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			if err := reader.CommitMessages(ctx, msg); err != nil {
				log.Error("commit notification message failed", zap.Error(err))
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
			continue
		}

		log.Info("notification delivered from event",
			zap.String("request_id", event.RequestID),
			zap.String("tenant_id", event.TenantID),
			zap.String("type", event.Type),
		)
	}
}
