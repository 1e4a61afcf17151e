package schedule

type UpsertAssignmentRequest struct {
	AnchorDate string   `json:"anchor_date" binding:"required"`
	Rotation   Rotation `json:"rotation" binding:"required"`
}

type AssignmentResponse struct {
	EmployeeID string   `json:"employee_id"`
	AnchorDate string   `json:"anchor_date"`
	Rotation   Rotation `json:"rotation"`
}

type ScheduleDay struct {
	Date           string `json:"date"`
	Weekday        string `json:"weekday"`
	CycleWeek      *int   `json:"cycle_week,omitempty"`
	IsOffDay       bool   `json:"is_off_day"`
	IsHoliday      bool   `json:"is_holiday"`
	HolidayName    string `json:"holiday_name,omitempty"`
	IsHalfDay      bool   `json:"is_half_day"`
	Adjusted       bool   `json:"adjusted"`
	WeekHasHoliday bool   `json:"week_has_holiday"`
}

type ScheduleRangeResponse struct {
	EmployeeID string        `json:"employee_id"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Days       []ScheduleDay `json:"days"`
}

type NextOffDaysResponse struct {
	EmployeeID string   `json:"employee_id"`
	From       string   `json:"from"`
	OffDays    []string `json:"off_days"`
}
