package notification

import "time"

const (
	TypeCompOffApproved       = "COMP_OFF_APPROVED"
	TypeCompOffRejected       = "COMP_OFF_REJECTED"
	TypeOnboardingTask        = "ONBOARDING_TASK_ASSIGNED"
	TypeOnboardingCompleted   = "ONBOARDING_COMPLETED"
	TypeReviewCycleLaunched   = "REVIEW_CYCLE_LAUNCHED"
	TypeSelfReviewSubmitted   = "SELF_REVIEW_SUBMITTED"
	TypeReviewCompleted       = "REVIEW_COMPLETED"
	TypeChangeRequestApproved = "CHANGE_REQUEST_APPROVED"
	TypeChangeRequestRejected = "CHANGE_REQUEST_REJECTED"
)

// Request describes one fan-out. EmployeeID targets a single employee;
// otherwise Roles selects every active user holding one of them.
type Request struct {
	TenantID   string
	EmployeeID string
	Roles      []string
	Type       string
	Title      string
	Message    string
	Link       string
}

func ToEmployee(tenantID, employeeID, typ, title, message, link string) Request {
	return Request{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Type:       typ,
		Title:      title,
		Message:    message,
		Link:       link,
	}
}

func ToRoles(tenantID string, roles []string, typ, title, message, link string) Request {
	return Request{
		TenantID: tenantID,
		Roles:    roles,
		Type:     typ,
		Title:    title,
		Message:  message,
		Link:     link,
	}
}

type CreateRequest struct {
	UserID  string
	Type    string
	Title   string
	Message string
	Link    string
}

type NotificationResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Link      *string    `json:"link,omitempty"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
