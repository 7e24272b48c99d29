package onboarding

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TypeOnboarding  = "ONBOARDING"
	TypeOffboarding = "OFFBOARDING"
)

const (
	ProcessNotStarted = "NOT_STARTED"
	ProcessInProgress = "IN_PROGRESS"
	ProcessCompleted  = "COMPLETED"
	ProcessCancelled  = "CANCELLED"
)

const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
	TaskSkipped    = "SKIPPED"
)

// Default assignee roles a template task may name.
const (
	AssigneeEmployee = "EMPLOYEE"
	AssigneeManager  = "MANAGER"
	AssigneeHRAdmin  = "HR_ADMIN"
)

// TaskDefinition is the template-side shape of a task. It is copied by value
// into OnboardingTask rows when a process starts.
type TaskDefinition struct {
	Title               string `json:"title"`
	Category            string `json:"category,omitempty"`
	Description         string `json:"description,omitempty"`
	DefaultAssigneeRole string `json:"defaultAssigneeRole"`
	DaysAfterStart      *int   `json:"daysAfterStart,omitempty"`
	SortOrder           int    `json:"sortOrder"`
}

// TaskDefinitions is stored as a jsonb document on the template row.
type TaskDefinitions []TaskDefinition

func (d TaskDefinitions) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d)
}

func (d *TaskDefinitions) Scan(value interface{}) error {
	if value == nil {
		*d = TaskDefinitions{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("onboarding: cannot scan %T into TaskDefinitions", value)
	}
	return json.Unmarshal(raw, d)
}

type Template struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_onboarding_templates_tenant_name"`
	Name        string          `gorm:"type:varchar(150);not null;uniqueIndex:uq_onboarding_templates_tenant_name"`
	Description *string         `gorm:"type:text"`
	Type        string          `gorm:"type:varchar(20);not null;default:'ONBOARDING'"`
	IsActive    bool            `gorm:"not null;default:true"`
	Tasks       TaskDefinitions `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Template) TableName() string {
	return "onboarding_templates"
}

type Process struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	TemplateID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type        string     `gorm:"type:varchar(20);not null"`
	Status      string     `gorm:"type:varchar(20);not null;default:'NOT_STARTED'"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	TargetDate  *time.Time `gorm:"type:date"`
	CompletedAt *time.Time
	Notes       *string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tasks    []Task           `gorm:"foreignKey:ProcessID"`
	Employee *ProcessEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Process) TableName() string {
	return "onboarding_processes"
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProcessID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Category    string     `gorm:"type:varchar(50)"`
	Description *string    `gorm:"type:text"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index"`
	DueDate     *time.Time `gorm:"type:date"`
	SortOrder   int        `gorm:"not null;default:0"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Notes       *string    `gorm:"type:text"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Process *Process `gorm:"foreignKey:ProcessID;references:ID"`
}

func (Task) TableName() string {
	return "onboarding_tasks"
}

type ProcessEmployee struct {
	ID        uuid.UUID  `gorm:"primaryKey"`
	FirstName string     `gorm:"column:first_name"`
	LastName  string     `gorm:"column:last_name"`
	ManagerID *uuid.UUID `gorm:"column:manager_id"`
}

func (ProcessEmployee) TableName() string {
	return "employees"
}

func (e *ProcessEmployee) FullName() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
