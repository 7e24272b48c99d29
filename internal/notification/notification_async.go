package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"
	"go.uber.org/zap"
)

// Sink performs the actual delivery of a Request.
type Sink interface {
	Deliver(ctx context.Context, req Request) error
}

const deliverTimeout = 10 * time.Second

type job struct {
	ctx context.Context
	req Request
}

// AsyncDispatcher fans requests out to a Sink from a fixed worker pool.
// The queue is bounded; when it is full the request is dropped and logged.
type AsyncDispatcher struct {
	sink   Sink
	queue  chan job
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger *zap.Logger
}

func NewAsyncDispatcher(sink Sink, workers, queueSize int, logger ...*zap.Logger) *AsyncDispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &AsyncDispatcher{
		sink:   sink,
		queue:  make(chan job, queueSize),
		logger: l,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work()
	}
	return d
}

func (d *AsyncDispatcher) Dispatch(ctx context.Context, req Request) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dropped, dispatcher closed",
			zap.String("tenant_id", req.TenantID),
			zap.String("type", req.Type),
		)
		return
	}

	// The request may finish before delivery; keep its values, drop its deadline.
	j := job{ctx: context.WithoutCancel(ctx), req: req}
	select {
	case d.queue <- j:
	default:
		d.logger.Warn("notification dropped, queue full",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("tenant_id", req.TenantID),
			zap.String("type", req.Type),
			zap.Int("capacity", cap(d.queue)),
		)
	}
}

// Close stops accepting requests and waits for queued ones to be delivered.
func (d *AsyncDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *AsyncDispatcher) work() {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *AsyncDispatcher) deliver(j job) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notification sink panicked",
				zap.String("type", j.req.Type),
				zap.Error(fmt.Errorf("%v", r)),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(j.ctx, deliverTimeout)
	defer cancel()

	if err := d.sink.Deliver(ctx, j.req); err != nil {
		d.logger.Error("notification delivery failed",
			zap.String("request_id", contextutil.GetRequestID(j.ctx)),
			zap.String("tenant_id", j.req.TenantID),
			zap.String("employee_id", j.req.EmployeeID),
			zap.Strings("roles", j.req.Roles),
			zap.String("type", j.req.Type),
			zap.Error(err),
		)
	}
}
