package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/events"
	"github.com/heyyrintu/hrms-sub001/internal/messaging/kafka"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
)

// OutboxSink persists requests to the outbox table; the worker relays them
// to Kafka and the consumer hands them to Service.Deliver.
type OutboxSink struct {
	outbox kafka.OutboxRepository
}

func NewOutboxSink(outbox kafka.OutboxRepository) *OutboxSink {
	return &OutboxSink{outbox: outbox}
}

func (s *OutboxSink) Deliver(ctx context.Context, req Request) error {
	rid := contextutil.GetRequestID(ctx)
	event := ToEvent(req, rid, time.Now().UTC())

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	aggregateID := req.EmployeeID
	if aggregateID == "" {
		aggregateID = req.TenantID
	}

	row := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "notification",
		AggregateID:   aggregateID,
		EventType:     event.EventType,
		Topic:         events.NotificationRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(row); err != nil {
		return err
	}
	return s.outbox.Create(ctx, row)
}

func ToEvent(req Request, requestID string, at time.Time) events.NotificationRequestedEvent {
	return events.NotificationRequestedEvent{
		EventType:  events.NotificationRequestedEventType,
		RequestID:  requestID,
		TenantID:   req.TenantID,
		EmployeeID: req.EmployeeID,
		Roles:      req.Roles,
		Type:       req.Type,
		Title:      req.Title,
		Message:    req.Message,
		Link:       req.Link,
		OccurredAt: at,
	}
}

func FromEvent(e events.NotificationRequestedEvent) Request {
	return Request{
		TenantID:   e.TenantID,
		EmployeeID: e.EmployeeID,
		Roles:      e.Roles,
		Type:       e.Type,
		Title:      e.Title,
		Message:    e.Message,
		Link:       e.Link,
	}
}
