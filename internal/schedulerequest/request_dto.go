package schedulerequest

type SubmitRequest struct {
	RequestType string `json:"request_type" binding:"required,oneof=HALF_DAY TEMP_CHANGE"`
	TargetDate  string `json:"target_date" binding:"required"`
	FromDate    string `json:"from_date"`
	Reason      string `json:"reason"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	RequestType     string  `json:"request_type"`
	TargetDate      string  `json:"target_date"`
	FromDate        *string `json:"from_date,omitempty"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RequestedAt     string  `json:"requested_at"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}
