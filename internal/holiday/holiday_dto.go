package holiday

type ListHolidaysQuery struct {
	Year      string `form:"year"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
	Year int    `json:"year" binding:"required"`
}

type UpdateHolidayRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type GenerateSubstitutesRequest struct {
	Year int `json:"year" binding:"required"`
}

type HolidayResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Status   string `json:"status"`
	IsActive bool   `json:"is_active"`
}

type SubstituteError struct {
	Date    string `json:"date"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type SubstituteGenerationResponse struct {
	Year      int               `json:"year"`
	Generated []HolidayResponse `json:"generated"`
	Errors    []SubstituteError `json:"errors,omitempty"`
}

type ValidationIssue struct {
	Type    string `json:"type"`
	Date    string `json:"date,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

type YearValidationResponse struct {
	Year          int               `json:"year"`
	TotalHolidays int               `json:"total_holidays"`
	Errors        []ValidationIssue `json:"errors"`
	Warnings      []ValidationIssue `json:"warnings"`
	IsValid       bool              `json:"is_valid"`
}
