package performance

import "time"

type CreateCycleRequest struct {
	Name        string  `json:"name" binding:"required,max=150"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string  `json:"endDate" binding:"required,datetime=2006-01-02"`
}

type UpdateCycleRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=150"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

type SelfReviewRequest struct {
	SelfRating   int    `json:"selfRating" binding:"required,min=1,max=5"`
	SelfComments string `json:"selfComments"`
}

type ManagerReviewRequest struct {
	ManagerRating   int    `json:"managerRating" binding:"required,min=1,max=5"`
	ManagerComments string `json:"managerComments"`
	OverallRating   int    `json:"overallRating" binding:"required,min=1,max=5"`
}

type CreateGoalRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	TargetDate  string  `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	Progress    *int    `json:"progress" binding:"omitempty,min=0,max=100"`
}

type UpdateGoalRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	TargetDate  *string `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	Progress    *int    `json:"progress" binding:"omitempty,min=0,max=100"`
	Status      *string `json:"status" binding:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
}

type CycleResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	StartDate    string           `json:"startDate"`
	EndDate      string           `json:"endDate"`
	Status       string           `json:"status"`
	ReviewCounts map[string]int64 `json:"reviewCounts,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type ReviewResponse struct {
	ID                 string     `json:"id"`
	CycleID            string     `json:"cycleId"`
	CycleName          string     `json:"cycleName,omitempty"`
	EmployeeID         string     `json:"employeeId"`
	EmployeeName       string     `json:"employeeName,omitempty"`
	ReviewerID         string     `json:"reviewerId"`
	ReviewerName       string     `json:"reviewerName,omitempty"`
	Status             string     `json:"status"`
	SelfRating         *int       `json:"selfRating,omitempty"`
	SelfComments       *string    `json:"selfComments,omitempty"`
	SelfSubmittedAt    *time.Time `json:"selfSubmittedAt,omitempty"`
	ManagerRating      *int       `json:"managerRating,omitempty"`
	ManagerComments    *string    `json:"managerComments,omitempty"`
	OverallRating      *int       `json:"overallRating,omitempty"`
	ManagerSubmittedAt *time.Time `json:"managerSubmittedAt,omitempty"`
}

type GoalResponse struct {
	ID          string    `json:"id"`
	ReviewID    string    `json:"reviewId"`
	EmployeeID  string    `json:"employeeId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	TargetDate  *string   `json:"targetDate,omitempty"`
	Progress    int       `json:"progress"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
