package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a login identity. EmployeeID is nil for service accounts that have
// no employee profile.
type User struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   uuid.UUID      `gorm:"column:tenant_id;type:uuid;not null;index"`
	EmployeeID *uuid.UUID     `gorm:"column:employee_id;type:uuid"`
	Email      string         `gorm:"column:email;type:text;not null"`
	Role       string         `gorm:"column:role;type:varchar(50);default:EMPLOYEE"`
	IsActive   bool           `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Employee *UserEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (User) TableName() string {
	return "users"
}

// UserEmployee is the minimal employee projection joined onto a user.
type UserEmployee struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	TenantID  uuid.UUID `gorm:"column:tenant_id"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (UserEmployee) TableName() string {
	return "employees"
}
