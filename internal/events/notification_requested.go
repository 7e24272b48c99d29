package events

import "time"

const NotificationRequestedTopic = "hr.notification.requested.v1"

const NotificationRequestedEventType = "notification_requested"

// NotificationRequestedEvent targets either one employee or every active
// user holding one of Roles.
type NotificationRequestedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	TenantID   string    `json:"tenant_id"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Roles      []string  `json:"roles,omitempty"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Link       string    `json:"link,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
