package schedule_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-workschedule/internal/schedule"
	scheduleerrors "go-workschedule/internal/schedule/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeScheduleRepository struct {
	withTxFn          func(tx *sql.Tx) schedule.Repository
	findAssignmentFn  func(ctx context.Context, employeeID string) (*schedule.ScheduleAssignment, error)
	saveAssignmentFn  func(ctx context.Context, a *schedule.ScheduleAssignment) error
	employeeExistsFn  func(ctx context.Context, employeeID string) (bool, error)
	hireDateFn        func(ctx context.Context, employeeID string) (time.Time, error)
	activeHolidaysFn  func(ctx context.Context, start, end time.Time) ([]schedule.HolidayDay, error)
	approvedChangesFn func(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.ApprovedChange, error)
}

func (f *fakeScheduleRepository) WithTx(tx *sql.Tx) schedule.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeScheduleRepository) FindAssignmentByEmployee(ctx context.Context, employeeID string) (*schedule.ScheduleAssignment, error) {
	if f.findAssignmentFn != nil {
		return f.findAssignmentFn(ctx, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeScheduleRepository) SaveAssignment(ctx context.Context, a *schedule.ScheduleAssignment) error {
	if f.saveAssignmentFn != nil {
		return f.saveAssignmentFn(ctx, a)
	}
	return nil
}

func (f *fakeScheduleRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeScheduleRepository) EmployeeHireDate(ctx context.Context, employeeID string) (time.Time, error) {
	if f.hireDateFn != nil {
		return f.hireDateFn(ctx, employeeID)
	}
	return date(2024, 1, 1), nil
}

func (f *fakeScheduleRepository) FindActiveHolidaysBetween(ctx context.Context, start, end time.Time) ([]schedule.HolidayDay, error) {
	if f.activeHolidaysFn != nil {
		return f.activeHolidaysFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeScheduleRepository) FindApprovedChangesBetween(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.ApprovedChange, error) {
	if f.approvedChangesFn != nil {
		return f.approvedChangesFn(ctx, employeeID, start, end)
	}
	return nil, nil
}

type scheduleServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service schedule.Service
	repo    *fakeScheduleRepository
}

func setupScheduleServiceTest(t *testing.T) *scheduleServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeScheduleRepository{}
	calc := schedule.NewCycleCalculator(kst)
	svc := schedule.NewService(db, repo, calc)

	return &scheduleServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func assignmentWith(t *testing.T, employeeID uuid.UUID, rotation schedule.Rotation) *schedule.ScheduleAssignment {
	t.Helper()
	encoded, err := schedule.EncodeRotation(rotation)
	assert.NoError(t, err)
	return &schedule.ScheduleAssignment{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		AnchorDate: date(2026, 1, 5),
		Rotation:   encoded,
	}
}

func TestScheduleService_GetRange(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("marks off-days and holidays", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAssignmentFn = func(ctx context.Context, eid string) (*schedule.ScheduleAssignment, error) {
			return assignmentWith(t, employeeID, schedule.Rotation{"0": {"FRIDAY"}}), nil
		}
		deps.repo.activeHolidaysFn = func(ctx context.Context, start, end time.Time) ([]schedule.HolidayDay, error) {
			return []schedule.HolidayDay{{Date: date(2026, 1, 9), Name: "임시공휴일"}}, nil
		}

		resp, err := deps.service.GetRange(ctx, employeeID.String(), "2026-01-05", "2026-01-11")

		assert.NoError(t, err)
		assert.Len(t, resp.Days, 7)

		friday := resp.Days[4]
		assert.Equal(t, "2026-01-09", friday.Date)
		assert.True(t, friday.IsOffDay)
		assert.True(t, friday.IsHoliday)
		assert.Equal(t, "임시공휴일", friday.HolidayName)
		assert.NotNil(t, friday.CycleWeek)
		assert.Equal(t, 0, *friday.CycleWeek)

		// Every day of the week carries the holiday-week flag.
		for _, day := range resp.Days {
			assert.True(t, day.WeekHasHoliday, day.Date)
		}
	})

	t.Run("days before the anchor week have no cycle position", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAssignmentFn = func(ctx context.Context, eid string) (*schedule.ScheduleAssignment, error) {
			return assignmentWith(t, employeeID, schedule.Rotation{"0": {"FRIDAY"}}), nil
		}

		resp, err := deps.service.GetRange(ctx, employeeID.String(), "2026-01-01", "2026-01-06")

		assert.NoError(t, err)
		// 2026-01-01 .. 01-04 precede the anchor week.
		for _, day := range resp.Days[:4] {
			assert.Nil(t, day.CycleWeek, day.Date)
			assert.False(t, day.IsOffDay, day.Date)
		}
		assert.NotNil(t, resp.Days[4].CycleWeek)
	})

	t.Run("approved temporary change moves the off-day", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAssignmentFn = func(ctx context.Context, eid string) (*schedule.ScheduleAssignment, error) {
			return assignmentWith(t, employeeID, schedule.Rotation{"0": {"FRIDAY"}}), nil
		}
		from := date(2026, 1, 9)
		deps.repo.approvedChangesFn = func(ctx context.Context, eid string, start, end time.Time) ([]schedule.ApprovedChange, error) {
			return []schedule.ApprovedChange{
				{RequestType: "TEMP_CHANGE", TargetDate: date(2026, 1, 7), FromDate: &from},
				{RequestType: "HALF_DAY", TargetDate: date(2026, 1, 6)},
			}, nil
		}

		resp, err := deps.service.GetRange(ctx, employeeID.String(), "2026-01-05", "2026-01-11")

		assert.NoError(t, err)

		wednesday := resp.Days[2]
		assert.True(t, wednesday.IsOffDay)
		assert.True(t, wednesday.Adjusted)

		friday := resp.Days[4]
		assert.False(t, friday.IsOffDay)
		assert.True(t, friday.Adjusted)

		assert.True(t, resp.Days[1].IsHalfDay)
	})

	t.Run("negative start after end", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetRange(ctx, employeeID.String(), "2026-02-01", "2026-01-01")
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidDateRange)
	})

	t.Run("negative range too large", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetRange(ctx, employeeID.String(), "2026-01-01", "2026-06-01")
		assert.ErrorIs(t, err, scheduleerrors.ErrRangeTooLarge)
	})

	t.Run("range cap counts inclusive days", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAssignmentFn = func(ctx context.Context, eid string) (*schedule.ScheduleAssignment, error) {
			return assignmentWith(t, employeeID, schedule.Rotation{"0": {"FRIDAY"}}), nil
		}

		// 2026-01-01 .. 2026-04-02 is exactly 92 days.
		resp, err := deps.service.GetRange(ctx, employeeID.String(), "2026-01-01", "2026-04-02")
		assert.NoError(t, err)
		assert.Len(t, resp.Days, 92)

		_, err = deps.service.GetRange(ctx, employeeID.String(), "2026-01-01", "2026-04-03")
		assert.ErrorIs(t, err, scheduleerrors.ErrRangeTooLarge)
	})

	t.Run("negative no assignment", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetRange(ctx, employeeID.String(), "2026-01-05", "2026-01-11")
		assert.ErrorIs(t, err, scheduleerrors.ErrAssignmentNotFound)
	})
}

func TestScheduleService_NextOffDays(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAssignmentFn = func(ctx context.Context, eid string) (*schedule.ScheduleAssignment, error) {
			return assignmentWith(t, employeeID, schedule.Rotation{"0": {"FRIDAY"}}), nil
		}

		resp, err := deps.service.NextOffDays(ctx, employeeID.String(), "2026-01-05", 2)

		assert.NoError(t, err)
		assert.Equal(t, []string{"2026-01-09", "2026-02-06"}, resp.OffDays)
	})

	t.Run("negative count out of bounds", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.NextOffDays(ctx, employeeID.String(), "2026-01-05", 0)
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidCount)

		_, err = deps.service.NextOffDays(ctx, employeeID.String(), "2026-01-05", 31)
		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidCount)
	})
}

func TestScheduleService_UpsertAssignment(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.saveAssignmentFn = func(ctx context.Context, a *schedule.ScheduleAssignment) error {
			assert.Equal(t, employeeID, a.EmployeeID)
			return nil
		}

		resp, err := deps.service.UpsertAssignment(ctx, employeeID.String(), schedule.UpsertAssignmentRequest{
			AnchorDate: "2026-01-05",
			Rotation:   schedule.Rotation{"0": {"FRIDAY"}},
		})

		assert.NoError(t, err)
		assert.Equal(t, "2026-01-05", resp.AnchorDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee not found", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.UpsertAssignment(ctx, employeeID.String(), schedule.UpsertAssignmentRequest{
			AnchorDate: "2026-01-05",
			Rotation:   schedule.Rotation{"0": {"FRIDAY"}},
		})

		assert.ErrorIs(t, err, scheduleerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid rotation", func(t *testing.T) {
		deps := setupScheduleServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpsertAssignment(ctx, employeeID.String(), schedule.UpsertAssignmentRequest{
			AnchorDate: "2026-01-05",
			Rotation:   schedule.Rotation{"9": {"FRIDAY"}},
		})

		assert.ErrorIs(t, err, scheduleerrors.ErrInvalidRotation)
	})
}
