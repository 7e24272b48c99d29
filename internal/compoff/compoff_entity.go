package compoff

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ExpiryDays is how long an earned comp-off stays usable after the worked date.
const ExpiryDays = 90

type CompOffRequest struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_comp_off_employee_date"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_comp_off_employee_date"`
	WorkedDate   time.Time  `gorm:"type:date;not null;uniqueIndex:uq_comp_off_employee_date"`
	Reason       string     `gorm:"type:text;not null"`
	EarnedDays   float64    `gorm:"type:numeric(3,1);not null;default:1"`
	ExpiryDate   time.Time  `gorm:"type:date;not null"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ApproverID   *uuid.UUID `gorm:"type:uuid"`
	ApproverNote *string    `gorm:"type:text"`
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Employee *RequestEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (CompOffRequest) TableName() string {
	return "comp_off_requests"
}

// RequestEmployee is the slice of the employee row the workflow needs.
type RequestEmployee struct {
	ID        uuid.UUID  `gorm:"primaryKey"`
	FirstName string     `gorm:"column:first_name"`
	LastName  string     `gorm:"column:last_name"`
	ManagerID *uuid.UUID `gorm:"column:manager_id"`
}

func (RequestEmployee) TableName() string {
	return "employees"
}

// Decision is the column set written by an approve or reject transition.
type Decision struct {
	Status     string
	ApproverID *uuid.UUID
	Note       *string
	DecidedAt  *time.Time
}
