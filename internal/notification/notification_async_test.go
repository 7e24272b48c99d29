package notification_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/notification"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type funcSink func(ctx context.Context, req notification.Request) error

func (f funcSink) Deliver(ctx context.Context, req notification.Request) error {
	return f(ctx, req)
}

func TestAsyncDispatcher_DeliversAfterCallerContextCancelled(t *testing.T) {
	var mu sync.Mutex
	var got []notification.Request
	var rids []string

	sink := funcSink(func(ctx context.Context, req notification.Request) error {
		mu.Lock()
		defer mu.Unlock()
		assert.NoError(t, ctx.Err())
		got = append(got, req)
		rids = append(rids, contextutil.GetRequestID(ctx))
		return nil
	})

	d := notification.NewAsyncDispatcher(sink, 2, 8, zap.NewNop())

	ctx, cancel := context.WithCancel(contextutil.WithRequestID(context.Background(), "rid-1"))
	cancel()

	d.Dispatch(ctx, notification.Request{TenantID: "t1", EmployeeID: "e1", Title: "a"})
	d.Dispatch(ctx, notification.Request{TenantID: "t1", EmployeeID: "e2", Title: "b"})
	d.Close()

	assert.Len(t, got, 2)
	assert.Equal(t, []string{"rid-1", "rid-1"}, rids)
}

func TestAsyncDispatcher_DropsWhenFull(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	delivered := 0

	sink := funcSink(func(ctx context.Context, req notification.Request) error {
		if req.Title == "first" {
			close(started)
			<-release
		}
		mu.Lock()
		delivered++
		mu.Unlock()
		return nil
	})

	d := notification.NewAsyncDispatcher(sink, 1, 1, zap.NewNop())

	d.Dispatch(context.Background(), notification.Request{Title: "first"})
	<-started

	// worker busy: second fills the queue, third is dropped without blocking
	d.Dispatch(context.Background(), notification.Request{Title: "second"})

	done := make(chan struct{})
	go func() {
		d.Dispatch(context.Background(), notification.Request{Title: "third"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	close(release)
	d.Close()

	assert.Equal(t, 2, delivered)
}

func TestAsyncDispatcher_SwallowsSinkFailures(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	sink := funcSink(func(ctx context.Context, req notification.Request) error {
		mu.Lock()
		calls++
		mu.Unlock()
		switch req.Title {
		case "error":
			return errors.New("boom")
		case "panic":
			panic("sink exploded")
		}
		return nil
	})

	d := notification.NewAsyncDispatcher(sink, 1, 4, zap.NewNop())
	d.Dispatch(context.Background(), notification.Request{Title: "error"})
	d.Dispatch(context.Background(), notification.Request{Title: "panic"})
	d.Dispatch(context.Background(), notification.Request{Title: "ok"})
	d.Close()

	assert.Equal(t, 3, calls)
}

func TestAsyncDispatcher_DispatchAfterClose(t *testing.T) {
	sink := funcSink(func(ctx context.Context, req notification.Request) error {
		t.Fatal("closed dispatcher must not deliver")
		return nil
	})

	d := notification.NewAsyncDispatcher(sink, 1, 1, zap.NewNop())
	d.Close()
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), notification.Request{Title: "late"})
	})
}
