package employee

import "time"

type EmployeeResponse struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employeeNumber"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone,omitempty"`
	Designation    *string    `json:"designation,omitempty"`
	Status         string     `json:"status"`
	ManagerID      *string    `json:"managerId,omitempty"`
	HireDate       *time.Time `json:"hireDate,omitempty"`
}
