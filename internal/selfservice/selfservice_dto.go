package selfservice

import "time"

type CreateChangeRequestRequest struct {
	FieldName string `json:"fieldName" binding:"required,selfservice_field"`
	NewValue  string `json:"newValue" binding:"required,max=255"`
	Reason    string `json:"reason" binding:"max=500"`
}

type ReviewChangeRequestRequest struct {
	Status     string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	ReviewNote string `json:"reviewNote" binding:"max=500"`
}

type ChangeRequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName,omitempty"`
	FieldName    string     `json:"fieldName"`
	OldValue     *string    `json:"oldValue"`
	NewValue     string     `json:"newValue"`
	Reason       *string    `json:"reason,omitempty"`
	Status       string     `json:"status"`
	ReviewedBy   *string    `json:"reviewedBy,omitempty"`
	ReviewNote   *string    `json:"reviewNote,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
