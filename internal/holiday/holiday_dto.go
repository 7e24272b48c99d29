package holiday

type CreateHolidayRequest struct {
	Name string `json:"name" binding:"required,max=150"`
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

type HolidayResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	IsActive bool   `json:"isActive"`
}
