package onboarding

import "time"

type TaskDefinitionRequest struct {
	Title               string `json:"title" binding:"required,max=200"`
	Category            string `json:"category" binding:"max=50"`
	Description         string `json:"description"`
	DefaultAssigneeRole string `json:"defaultAssigneeRole" binding:"required,oneof=EMPLOYEE MANAGER HR_ADMIN"`
	DaysAfterStart      *int   `json:"daysAfterStart" binding:"omitempty,gte=0"`
	SortOrder           *int   `json:"sortOrder" binding:"omitempty,gte=0"`
}

type CreateTemplateRequest struct {
	Name        string                  `json:"name" binding:"required,max=150"`
	Description *string                 `json:"description"`
	Type        string                  `json:"type" binding:"omitempty,oneof=ONBOARDING OFFBOARDING"`
	IsActive    *bool                   `json:"isActive"`
	Tasks       []TaskDefinitionRequest `json:"tasks" binding:"required,min=1,dive"`
}

type UpdateTemplateRequest struct {
	Name        *string                 `json:"name" binding:"omitempty,max=150"`
	Description *string                 `json:"description"`
	Type        *string                 `json:"type" binding:"omitempty,oneof=ONBOARDING OFFBOARDING"`
	IsActive    *bool                   `json:"isActive"`
	Tasks       []TaskDefinitionRequest `json:"tasks" binding:"omitempty,min=1,dive"`
}

type CreateProcessRequest struct {
	TemplateID string `json:"templateId" binding:"required,uuid"`
	EmployeeID string `json:"employeeId" binding:"required,uuid"`
	StartDate  string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	TargetDate string `json:"targetDate" binding:"omitempty,datetime=2006-01-02"`
	Notes      string `json:"notes"`
}

type UpdateTaskRequest struct {
	Status     *string `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED SKIPPED"`
	AssigneeID *string `json:"assigneeId" binding:"omitempty,uuid"`
	DueDate    *string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Notes      *string `json:"notes"`
}

type TemplateResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Type        string           `json:"type"`
	IsActive    bool             `json:"isActive"`
	Tasks       []TaskDefinition `json:"tasks"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	ProcessID   string     `json:"processId"`
	Title       string     `json:"title"`
	Category    string     `json:"category,omitempty"`
	Description *string    `json:"description,omitempty"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
	DueDate     *string    `json:"dueDate,omitempty"`
	SortOrder   int        `json:"sortOrder"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type ProcessResponse struct {
	ID           string         `json:"id"`
	EmployeeID   string         `json:"employeeId"`
	EmployeeName string         `json:"employeeName,omitempty"`
	TemplateID   string         `json:"templateId"`
	Type         string         `json:"type"`
	Status       string         `json:"status"`
	StartDate    string         `json:"startDate"`
	TargetDate   *string        `json:"targetDate,omitempty"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	Notes        *string        `json:"notes,omitempty"`
	Tasks        []TaskResponse `json:"tasks,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
