package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	scheduleerrors "go-workschedule/internal/schedule/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxRangeDays = 92

const (
	changeTypeHalfDay   = "HALF_DAY"
	changeTypeTempShift = "TEMP_CHANGE"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	GetRange(ctx context.Context, employeeID, startDate, endDate string) (ScheduleRangeResponse, error)
	NextOffDays(ctx context.Context, employeeID, fromDate string, count int) (NextOffDaysResponse, error)
	GetAssignment(ctx context.Context, employeeID string) (AssignmentResponse, error)
	UpsertAssignment(ctx context.Context, employeeID string, req UpsertAssignmentRequest) (AssignmentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	calc   *CycleCalculator
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, calc *CycleCalculator, logger ...*zap.Logger) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{db: db, repo: repo, calc: calc, now: time.Now, logger: l}
}

func NewServiceWithClock(db *sql.DB, repo Repository, calc *CycleCalculator, now func() time.Time, logger ...*zap.Logger) Service {
	svc := NewService(db, repo, calc, logger...).(*service)
	svc.now = now
	return svc
}

func (s *service) parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", v, s.calc.Location())
	if err != nil {
		return time.Time{}, scheduleerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func (s *service) today() time.Time {
	return s.calc.Normalize(s.now().In(s.calc.Location()))
}

// GetRange computes the roster day by day; nothing is pre-materialized.
// Approved temporary changes move the off-day flag between dates and
// approved half-days are marked on their target date.
func (s *service) GetRange(ctx context.Context, employeeID, startDate, endDate string) (ScheduleRangeResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ScheduleRangeResponse{}, scheduleerrors.ErrInvalidEmployeeID
	}

	start := s.today()
	if startDate != "" {
		var err error
		if start, err = s.parseDate(startDate); err != nil {
			return ScheduleRangeResponse{}, err
		}
	}
	end := start.AddDate(0, 0, 27)
	if endDate != "" {
		var err error
		if end, err = s.parseDate(endDate); err != nil {
			return ScheduleRangeResponse{}, err
		}
	}
	if start.After(end) {
		return ScheduleRangeResponse{}, scheduleerrors.ErrInvalidDateRange
	}
	// Inclusive day count; both bounds are midnight civil dates in the
	// same fixed zone, so the difference is an exact multiple of 24h.
	rangeDays := int(end.Sub(start)/(24*time.Hour)) + 1
	if rangeDays > maxRangeDays {
		return ScheduleRangeResponse{}, scheduleerrors.ErrRangeTooLarge
	}

	assignment, err := s.repo.FindAssignmentByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScheduleRangeResponse{}, scheduleerrors.ErrAssignmentNotFound
		}
		s.logger.Error("get range load assignment failed", zap.String("employee_id", employeeID), zap.Error(err))
		return ScheduleRangeResponse{}, err
	}
	rotation, err := assignment.DecodeRotation()
	if err != nil {
		return ScheduleRangeResponse{}, err
	}
	anchor := s.calc.Normalize(assignment.AnchorDate)

	// Holidays are loaded for the full surrounding weeks so the
	// week-has-holiday flag is correct at the range edges.
	holidays, err := s.repo.FindActiveHolidaysBetween(ctx, s.calc.WeekStart(start), s.calc.WeekEnd(end))
	if err != nil {
		s.logger.Error("get range load holidays failed", zap.Error(err))
		return ScheduleRangeResponse{}, err
	}
	holidayByDate := make(map[string]string, len(holidays))
	weekHasHoliday := make(map[string]bool)
	for _, h := range holidays {
		day := s.calc.Normalize(h.Date)
		holidayByDate[day.Format("2006-01-02")] = h.Name
		weekHasHoliday[s.calc.WeekStart(day).Format("2006-01-02")] = true
	}

	changes, err := s.repo.FindApprovedChangesBetween(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error("get range load approved changes failed", zap.Error(err))
		return ScheduleRangeResponse{}, err
	}
	halfDays := make(map[string]bool)
	movedTo := make(map[string]bool)
	movedFrom := make(map[string]bool)
	for _, ch := range changes {
		target := s.calc.Normalize(ch.TargetDate).Format("2006-01-02")
		switch ch.RequestType {
		case changeTypeHalfDay:
			halfDays[target] = true
		case changeTypeTempShift:
			movedTo[target] = true
			if ch.FromDate != nil {
				movedFrom[s.calc.Normalize(*ch.FromDate).Format("2006-01-02")] = true
			}
		}
	}

	resp := ScheduleRangeResponse{
		EmployeeID: employeeID,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Days:       []ScheduleDay{},
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format("2006-01-02")
		entry := ScheduleDay{
			Date:           dateStr,
			Weekday:        day.Weekday().String(),
			WeekHasHoliday: weekHasHoliday[s.calc.WeekStart(day).Format("2006-01-02")],
		}

		if name, ok := holidayByDate[dateStr]; ok {
			entry.IsHoliday = true
			entry.HolidayName = name
		}

		// Days before the anchor week have no cycle position.
		if !s.calc.WeekStart(day).Before(s.calc.WeekStart(anchor)) {
			cycleWeek, err := s.calc.CycleWeek(anchor, day)
			if err != nil {
				return ScheduleRangeResponse{}, err
			}
			entry.CycleWeek = &cycleWeek

			isOff, err := s.calc.IsOffDay(anchor, day, rotation)
			if err != nil {
				return ScheduleRangeResponse{}, err
			}
			entry.IsOffDay = isOff
		}

		if movedFrom[dateStr] && entry.IsOffDay {
			entry.IsOffDay = false
			entry.Adjusted = true
		}
		if movedTo[dateStr] {
			entry.IsOffDay = true
			entry.Adjusted = true
		}
		entry.IsHalfDay = halfDays[dateStr]

		resp.Days = append(resp.Days, entry)
	}

	return resp, nil
}

func (s *service) NextOffDays(ctx context.Context, employeeID, fromDate string, count int) (NextOffDaysResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return NextOffDaysResponse{}, scheduleerrors.ErrInvalidEmployeeID
	}
	if count < 1 || count > 30 {
		return NextOffDaysResponse{}, scheduleerrors.ErrInvalidCount
	}

	from := s.today()
	if fromDate != "" {
		var err error
		if from, err = s.parseDate(fromDate); err != nil {
			return NextOffDaysResponse{}, err
		}
	}

	assignment, err := s.repo.FindAssignmentByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NextOffDaysResponse{}, scheduleerrors.ErrAssignmentNotFound
		}
		return NextOffDaysResponse{}, err
	}
	rotation, err := assignment.DecodeRotation()
	if err != nil {
		return NextOffDaysResponse{}, err
	}

	offDays, err := s.calc.NextOffDays(s.calc.Normalize(assignment.AnchorDate), rotation, from, count)
	if err != nil {
		return NextOffDaysResponse{}, err
	}

	resp := NextOffDaysResponse{
		EmployeeID: employeeID,
		From:       from.Format("2006-01-02"),
		OffDays:    make([]string, len(offDays)),
	}
	for i, day := range offDays {
		resp.OffDays[i] = day.Format("2006-01-02")
	}
	return resp, nil
}

func (s *service) GetAssignment(ctx context.Context, employeeID string) (AssignmentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AssignmentResponse{}, scheduleerrors.ErrInvalidEmployeeID
	}

	assignment, err := s.repo.FindAssignmentByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, scheduleerrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}
	return s.mapAssignment(assignment)
}

func (s *service) UpsertAssignment(ctx context.Context, employeeID string, req UpsertAssignmentRequest) (AssignmentResponse, error) {
	s.logger.Debug("upsert assignment requested",
		zap.String("employee_id", employeeID),
		zap.String("anchor_date", req.AnchorDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AssignmentResponse{}, scheduleerrors.ErrInvalidEmployeeID
	}
	anchor, err := s.parseDate(req.AnchorDate)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if err := req.Rotation.Validate(); err != nil {
		s.logger.Warn("upsert assignment invalid rotation", zap.Error(err))
		return AssignmentResponse{}, err
	}
	encoded, err := EncodeRotation(req.Rotation)
	if err != nil {
		return AssignmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upsert assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		return AssignmentResponse{}, err
	}
	if !exists {
		return AssignmentResponse{}, scheduleerrors.ErrEmployeeNotFound
	}

	assignment := &ScheduleAssignment{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		AnchorDate: anchor,
		Rotation:   encoded,
	}
	if err := qtx.SaveAssignment(ctx, assignment); err != nil {
		s.logger.Error("upsert assignment persist failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("upsert assignment commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	s.logger.Info("upsert assignment success", zap.String("employee_id", employeeID))

	return s.mapAssignment(assignment)
}

func (s *service) mapAssignment(a *ScheduleAssignment) (AssignmentResponse, error) {
	rotation, err := a.DecodeRotation()
	if err != nil {
		return AssignmentResponse{}, err
	}
	return AssignmentResponse{
		EmployeeID: a.EmployeeID.String(),
		AnchorDate: s.calc.Normalize(a.AnchorDate).Format("2006-01-02"),
		Rotation:   rotation,
	}, nil
}
