package leave

type LeaveTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	DefaultDays float64 `json:"defaultDays"`
	IsActive    bool    `json:"isActive"`
}

type LeaveBalanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	LeaveTypeID   string  `json:"leaveTypeId"`
	LeaveTypeCode string  `json:"leaveTypeCode,omitempty"`
	LeaveTypeName string  `json:"leaveTypeName,omitempty"`
	Year          int     `json:"year"`
	TotalDays     float64 `json:"totalDays"`
	UsedDays      float64 `json:"usedDays"`
	PendingDays   float64 `json:"pendingDays"`
	CarriedOver   float64 `json:"carriedOver"`
	Available     float64 `json:"available"`
}
