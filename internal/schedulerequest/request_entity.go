package schedulerequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeHalfDay    = "HALF_DAY"
	TypeTempChange = "TEMP_CHANGE"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ScheduleChangeRequest rows are an audit trail: a request is immutable once
// decided and is never deleted.
type ScheduleChangeRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_schedule_requests_employee"`
	RequestType string     `gorm:"type:varchar(20);not null"`
	TargetDate  time.Time  `gorm:"type:date;not null;index:idx_schedule_requests_target"`
	FromDate    *time.Time `gorm:"type:date"`
	Reason      string     `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_schedule_requests_status"`
	RequestedAt     time.Time  `gorm:"not null"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid"`
	DecidedAt       *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *ScheduleChangeRequest) IsPending() bool {
	return r.Status == StatusPending
}
