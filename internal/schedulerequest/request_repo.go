package schedulerequest

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *ScheduleChangeRequest) error
	FindAll(ctx context.Context) ([]ScheduleChangeRequest, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]ScheduleChangeRequest, error)
	FindByID(ctx context.Context, id string) (*ScheduleChangeRequest, error)
	// DecideIfPending applies the decision only when the row is still
	// PENDING and reports whether this caller won. Concurrent deciders race
	// on the conditional update; exactly one wins.
	DecideIfPending(ctx context.Context, r *ScheduleChangeRequest) (bool, error)
	HasApprovedTempChangeOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, req *ScheduleChangeRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *repository) FindAll(ctx context.Context) ([]ScheduleChangeRequest, error) {
	var requests []ScheduleChangeRequest
	err := r.db.WithContext(ctx).
		Order("requested_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]ScheduleChangeRequest, error) {
	var requests []ScheduleChangeRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("requested_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ScheduleChangeRequest, error) {
	var req ScheduleChangeRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) DecideIfPending(ctx context.Context, req *ScheduleChangeRequest) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ScheduleChangeRequest{}).
		Where("id = ?", req.ID).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":           req.Status,
			"decided_by":       req.DecidedBy,
			"decided_at":       req.DecidedAt,
			"rejection_reason": req.RejectionReason,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) HasApprovedTempChangeOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ScheduleChangeRequest{}).
		Where("employee_id = ?", employeeID).
		Where("request_type = ?", TypeTempChange).
		Where("target_date = ?", date).
		Where("status = ?", StatusApproved).
		Count(&count).Error
	return count > 0, err
}
