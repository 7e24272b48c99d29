package performance

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CycleDraft     = "DRAFT"
	CycleActive    = "ACTIVE"
	CycleCompleted = "COMPLETED"
)

const (
	ReviewPending    = "PENDING"
	ReviewSelfReview = "SELF_REVIEW"
	ReviewCompleted  = "COMPLETED"
)

const (
	GoalNotStarted = "NOT_STARTED"
	GoalInProgress = "IN_PROGRESS"
	GoalCompleted  = "COMPLETED"
)

const (
	MinRating = 1
	MaxRating = 5
)

type ReviewCycle struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(150);not null"`
	Description *string   `gorm:"type:text"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ReviewCycle) TableName() string {
	return "review_cycles"
}

// Review is one employee's review within a cycle. ReviewerID is the manager
// captured at launch and is not retargeted afterwards.
type Review struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CycleID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_performance_reviews_cycle_employee"`
	EmployeeID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_performance_reviews_cycle_employee"`
	ReviewerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Status             string    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	SelfRating         *int
	SelfComments       *string `gorm:"type:text"`
	SelfSubmittedAt    *time.Time
	ManagerRating      *int
	ManagerComments    *string `gorm:"type:text"`
	OverallRating      *int
	ManagerSubmittedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Employee *ReviewEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
	Reviewer *ReviewEmployee `gorm:"foreignKey:ReviewerID;references:ID"`
	Cycle    *ReviewCycle    `gorm:"foreignKey:CycleID;references:ID"`
}

func (Review) TableName() string {
	return "performance_reviews"
}

type Goal struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReviewID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description *string    `gorm:"type:text"`
	TargetDate  *time.Time `gorm:"type:date"`
	Progress    int        `gorm:"not null;default:0"`
	Status      string     `gorm:"type:varchar(20);not null;default:'NOT_STARTED'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Goal) TableName() string {
	return "performance_goals"
}

type ReviewEmployee struct {
	ID        uuid.UUID `gorm:"primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (ReviewEmployee) TableName() string {
	return "employees"
}

func (e *ReviewEmployee) FullName() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// StatusCount is one row of a GROUP BY status query.
type StatusCount struct {
	Status string
	Count  int64
}

// ReviewFilter narrows a review listing. Empty fields are ignored.
type ReviewFilter struct {
	CycleID    string
	EmployeeID string
	ReviewerID string
}
