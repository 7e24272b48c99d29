package producer_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/messaging/kafka"
	"github.com/heyyrintu/hrms-sub001/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOutbox struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  []string
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository                 { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error { return nil }
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeWriter struct {
	msgs   []kafkago.Message
	failOn string
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failOn {
			return errors.New("broker unavailable")
		}
		w.msgs = append(w.msgs, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	repo := &fakeOutbox{pending: []kafka.OutboxEvent{
		{ID: "o1", RequestID: "rid-1", AggregateID: "a1", EventType: "notification_requested", Topic: "topic", Payload: []byte(`{}`)},
		{ID: "o2", AggregateID: "bad", EventType: "notification_requested", Topic: "topic", Payload: []byte(`{}`)},
	}}
	writer := &fakeWriter{failOn: "bad"}

	err := producer.ProcessPendingEvents(context.Background(), repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, []string{"o1"}, repo.sent)
	assert.Equal(t, []string{"o2"}, repo.failed)
	assert.Len(t, writer.msgs, 1)

	var rid string
	for _, h := range writer.msgs[0].Headers {
		if h.Key == "request_id" {
			rid = string(h.Value)
		}
	}
	assert.Equal(t, "rid-1", rid)
}
