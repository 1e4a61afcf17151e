package holiday

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Holiday rows are never hard-deleted; "deletion" moves the lifecycle state
// to INACTIVE. A partial unique index keeps at most one ACTIVE holiday per
// calendar date.
type Holiday struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uq_holidays_active_date,where:status = 'ACTIVE'"`
	Name   string    `gorm:"type:varchar(100);not null"`
	Year   int       `gorm:"type:int;not null;index:idx_holidays_year"`
	Status string    `gorm:"type:varchar(10);not null;default:'ACTIVE';index:idx_holidays_status"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (h *Holiday) IsActive() bool {
	return h.Status == StatusActive
}
