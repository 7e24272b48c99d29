package notification

import "context"

// Dispatcher queues a notification and returns immediately. Delivery
// failures never reach the caller.
//
//go:generate mockgen -source=notification_dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request)
}
