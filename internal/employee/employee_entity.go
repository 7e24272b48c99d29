package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID  `gorm:"type:uuid;index"`
	EmployeeNumber string
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	Designation    *string
	Status         string
	ManagerID      *uuid.UUID `gorm:"type:uuid;index"`
	HireDate       *time.Time `gorm:"type:date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

func (e Employee) ManagerIDString() string {
	if e.ManagerID == nil {
		return ""
	}
	return e.ManagerID.String()
}
