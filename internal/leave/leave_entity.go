package leave

import (
	"time"

	"github.com/google/uuid"
)

const CodeCompOff = "COMP_OFF"

type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_types_tenant_code"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Code        string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_types_tenant_code"`
	DefaultDays float64   `gorm:"type:numeric(5,1);not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeaveBalance is keyed by (tenant, employee, leave type, year).
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_key"`
	Year        int       `gorm:"not null;uniqueIndex:uq_leave_balances_key"`
	TotalDays   float64   `gorm:"type:numeric(5,1);not null;default:0"`
	UsedDays    float64   `gorm:"type:numeric(5,1);not null;default:0"`
	PendingDays float64   `gorm:"type:numeric(5,1);not null;default:0"`
	CarriedOver float64   `gorm:"type:numeric(5,1);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	LeaveType *LeaveType `gorm:"foreignKey:LeaveTypeID;references:ID"`
}

// Available is what the employee can still request.
func (b LeaveBalance) Available() float64 {
	return b.TotalDays + b.CarriedOver - b.UsedDays - b.PendingDays
}
