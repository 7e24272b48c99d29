package selfservice

import (
	"strings"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/employee"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// editableFields maps the API field name to the employees column it writes.
var editableFields = map[string]string{
	"phone":       "phone",
	"email":       "email",
	"designation": "designation",
	"firstName":   "first_name",
	"lastName":    "last_name",
}

// valueRules are validator tags applied to NewValue per field.
var valueRules = map[string]string{
	"phone":       "required,max=30",
	"email":       "required,email,max=255",
	"designation": "required,max=100",
	"firstName":   "required,max=100",
	"lastName":    "required,max=100",
}

func ColumnFor(field string) (string, bool) {
	col, ok := editableFields[field]
	return col, ok
}

// currentValue reads the live value of an editable field.
func currentValue(e *employee.Employee, field string) *string {
	var v string
	switch field {
	case "phone":
		if e.Phone == nil {
			return nil
		}
		v = *e.Phone
	case "designation":
		if e.Designation == nil {
			return nil
		}
		v = *e.Designation
	case "email":
		v = e.Email
	case "firstName":
		v = e.FirstName
	case "lastName":
		v = e.LastName
	default:
		return nil
	}
	return &v
}

type ChangeRequest struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FieldName  string     `gorm:"type:varchar(50);not null"`
	OldValue   *string    `gorm:"type:text"`
	NewValue   string     `gorm:"type:text;not null"`
	Reason     *string    `gorm:"type:text"`
	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewNote *string    `gorm:"type:text"`
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *RequestEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (ChangeRequest) TableName() string {
	return "employee_change_requests"
}

type RequestEmployee struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (RequestEmployee) TableName() string {
	return "employees"
}

func (e *RequestEmployee) FullName() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Review struct {
	Status     string
	ReviewedBy *uuid.UUID
	Note       *string
	ReviewedAt time.Time
}
