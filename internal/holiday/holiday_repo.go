package holiday

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	Year      *int
	StartDate *time.Time
	EndDate   *time.Time
}

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	FindAll(ctx context.Context, filter ListFilter) ([]Holiday, error)
	FindByID(ctx context.Context, id string) (*Holiday, error)
	Update(ctx context.Context, h *Holiday) error
	FindActiveByYear(ctx context.Context, year int) ([]Holiday, error)
	ExistsActiveOnDate(ctx context.Context, date time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Holiday, error) {
	db := r.db.WithContext(ctx).Model(&Holiday{})

	if filter.Year != nil {
		db = db.Where("year = ?", *filter.Year)
	}
	if filter.StartDate != nil {
		db = db.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("date <= ?", *filter.EndDate)
	}

	var holidays []Holiday
	err := db.Order("date ASC").Find(&holidays).Error
	return holidays, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) Update(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) FindActiveByYear(ctx context.Context, year int) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Where("status = ?", StatusActive).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *repository) ExistsActiveOnDate(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Where("date = ?", date).
		Where("status = ?", StatusActive).
		Count(&count).Error
	return count > 0, err
}
