package schedule

import (
	"encoding/json"
	"time"

	scheduleerrors "go-workschedule/internal/schedule/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScheduleAssignment pins an employee to the rotating roster: AnchorDate
// marks cycle week 0 and Rotation holds the per-week off-day mapping.
type ScheduleAssignment struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_assignments_employee"`
	AnchorDate time.Time      `gorm:"type:date;not null"`
	Rotation   datatypes.JSON `gorm:"type:jsonb;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *ScheduleAssignment) DecodeRotation() (Rotation, error) {
	var rotation Rotation
	if err := json.Unmarshal(a.Rotation, &rotation); err != nil {
		return nil, scheduleerrors.ErrInvalidRotation
	}
	return rotation, nil
}

func EncodeRotation(rotation Rotation) (datatypes.JSON, error) {
	raw, err := json.Marshal(rotation)
	if err != nil {
		return nil, scheduleerrors.ErrInvalidRotation
	}
	return datatypes.JSON(raw), nil
}
