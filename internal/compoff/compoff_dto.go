package compoff

import "time"

type CreateCompOffRequest struct {
	WorkedDate string   `json:"workedDate" binding:"required,datetime=2006-01-02"`
	Reason     string   `json:"reason" binding:"required,max=1000"`
	EarnedDays *float64 `json:"earnedDays" binding:"omitempty,gte=0,lte=5"`
}

type DecisionRequest struct {
	Note string `json:"note" binding:"max=1000"`
}

type CompOffResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName,omitempty"`
	WorkedDate   string     `json:"workedDate"`
	Reason       string     `json:"reason"`
	EarnedDays   float64    `json:"earnedDays"`
	ExpiryDate   string     `json:"expiryDate"`
	Status       string     `json:"status"`
	ApproverID   *string    `json:"approverId,omitempty"`
	ApproverNote *string    `json:"approverNote,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
