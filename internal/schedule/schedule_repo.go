package schedule

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HolidayDay is the slice of the holidays table the roster needs.
type HolidayDay struct {
	Date time.Time
	Name string
}

// ApprovedChange is an approved schedule-change request overlapping a range.
type ApprovedChange struct {
	RequestType string
	TargetDate  time.Time
	FromDate    *time.Time
}

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAssignmentByEmployee(ctx context.Context, employeeID string) (*ScheduleAssignment, error)
	SaveAssignment(ctx context.Context, a *ScheduleAssignment) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	EmployeeHireDate(ctx context.Context, employeeID string) (time.Time, error)
	FindActiveHolidaysBetween(ctx context.Context, start, end time.Time) ([]HolidayDay, error)
	FindApprovedChangesBetween(ctx context.Context, employeeID string, start, end time.Time) ([]ApprovedChange, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the session onto the caller's transaction; every statement
// issued through the returned repository joins it.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	if tx == nil {
		return r
	}
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) FindAssignmentByEmployee(ctx context.Context, employeeID string) (*ScheduleAssignment, error) {
	var a ScheduleAssignment
	err := r.db.WithContext(ctx).
		First(&a, "employee_id = ?", employeeID).Error
	return &a, err
}

func (r *repository) SaveAssignment(ctx context.Context, a *ScheduleAssignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"anchor_date", "rotation", "updated_at"}),
		}).
		Create(a).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeHireDate(ctx context.Context, employeeID string) (time.Time, error) {
	var row struct {
		HireDate time.Time
	}
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("hire_date").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Take(&row).Error
	return row.HireDate, err
}

func (r *repository) FindActiveHolidaysBetween(ctx context.Context, start, end time.Time) ([]HolidayDay, error) {
	var holidays []HolidayDay
	err := r.db.WithContext(ctx).
		Table("holidays").
		Select("date", "name").
		Where("status = ?", "ACTIVE").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date ASC").
		Scan(&holidays).Error
	return holidays, err
}

func (r *repository) FindApprovedChangesBetween(ctx context.Context, employeeID string, start, end time.Time) ([]ApprovedChange, error) {
	var changes []ApprovedChange
	err := r.db.WithContext(ctx).
		Table("schedule_change_requests").
		Select("request_type", "target_date", "from_date").
		Where("employee_id = ?", employeeID).
		Where("status = ?", "APPROVED").
		Where("target_date BETWEEN ? AND ? OR from_date BETWEEN ? AND ?", start, end, start, end).
		Scan(&changes).Error
	return changes, err
}
