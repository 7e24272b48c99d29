package notification_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/events"
	"github.com/heyyrintu/hrms-sub001/internal/messaging/kafka"
	"github.com/heyyrintu/hrms-sub001/internal/notification"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func TestOutboxSink_Deliver(t *testing.T) {
	repo := &fakeOutboxRepository{}
	sink := notification.NewOutboxSink(repo)
	tenantID := uuid.NewString()
	employeeID := uuid.NewString()
	ctx := contextutil.WithRequestID(context.Background(), "rid-9")

	err := sink.Deliver(ctx, notification.ToEmployee(tenantID, employeeID, notification.TypeReviewCompleted, "Review completed", "rating 4", "/reviews/1"))

	assert.NoError(t, err)
	assert.Len(t, repo.created, 1)

	row := repo.created[0]
	assert.Equal(t, events.NotificationRequestedTopic, row.Topic)
	assert.Equal(t, kafka.OutboxStatusPending, row.Status)
	assert.Equal(t, employeeID, row.AggregateID)
	assert.Equal(t, "rid-9", row.RequestID)

	var event events.NotificationRequestedEvent
	assert.NoError(t, json.Unmarshal(row.Payload, &event))
	assert.Equal(t, tenantID, event.TenantID)
	assert.Equal(t, "Review completed", event.Title)

	back := notification.FromEvent(event)
	assert.Equal(t, employeeID, back.EmployeeID)
	assert.Equal(t, "/reviews/1", back.Link)
}

func TestOutboxSink_RoleTargetUsesTenantAsAggregate(t *testing.T) {
	repo := &fakeOutboxRepository{}
	sink := notification.NewOutboxSink(repo)
	tenantID := uuid.NewString()

	err := sink.Deliver(context.Background(), notification.ToRoles(tenantID, []string{"HR_ADMIN"}, "T", "Title", "m", ""))

	assert.NoError(t, err)
	assert.Equal(t, tenantID, repo.created[0].AggregateID)
}
