package user

type UserResponse struct {
	ID         string  `json:"id"`
	EmployeeID *string `json:"employeeId,omitempty"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	IsActive   bool    `json:"isActive"`
	FullName   string  `json:"fullName,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}
