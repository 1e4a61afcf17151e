package events

import "time"

const ScheduleRequestDecidedTopic = "backoffice.schedule_request.decided.v1"

// ScheduleRequestDecidedEvent notifies downstream systems (mail, messenger
// bots) that an admin decided a schedule change request.
type ScheduleRequestDecidedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	EmployeeID  string    `json:"employee_id"`
	RequestType string    `json:"request_type"`
	TargetDate  string    `json:"target_date"`
	Status      string    `json:"status"`
	DecidedBy   string    `json:"decided_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
