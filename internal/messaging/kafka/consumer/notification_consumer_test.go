package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/events"
	"github.com/heyyrintu/hrms-sub001/internal/messaging/kafka/consumer"
	"github.com/heyyrintu/hrms-sub001/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

type recordingSink struct {
	reqs []notification.Request
	fail bool
}

func (s *recordingSink) Deliver(ctx context.Context, req notification.Request) error {
	s.reqs = append(s.reqs, req)
	if s.fail {
		return errors.New("db down")
	}
	return nil
}

func encode(t *testing.T, e events.NotificationRequestedEvent) []byte {
	t.Helper()
	b, err := json.Marshal(e)
	assert.NoError(t, err)
	return b
}

func TestConsumeNotificationRequested(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 1, Value: encode(t, events.NotificationRequestedEvent{TenantID: "t1", EmployeeID: "e1", Title: "hello"})},
			{Offset: 2, Value: []byte("not json")},
			{Offset: 3, Value: encode(t, events.NotificationRequestedEvent{TenantID: "t1", Roles: []string{"HR_ADMIN"}, Title: "hr"})},
		},
	}
	sink := &recordingSink{}

	consumer.ConsumeNotificationRequested(ctx, reader, sink, zap.NewNop())

	assert.Len(t, sink.reqs, 2)
	assert.Equal(t, "e1", sink.reqs[0].EmployeeID)
	assert.Equal(t, []string{"HR_ADMIN"}, sink.reqs[1].Roles)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}

func TestConsumeNotificationRequested_DeliveryFailureDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			{Offset: 7, Value: encode(t, events.NotificationRequestedEvent{TenantID: "t1", EmployeeID: "e1", Title: "x"})},
			{Offset: 8, Value: encode(t, events.NotificationRequestedEvent{TenantID: "t1", EmployeeID: "e2", Title: "y"})},
		},
	}
	sink := &recordingSink{fail: true}

	consumer.ConsumeNotificationRequested(ctx, reader, sink, zap.NewNop())

	assert.Len(t, sink.reqs, 2)
	assert.Equal(t, []int64{7, 8}, reader.committed)
}
