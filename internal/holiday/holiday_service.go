package holiday

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	holidayerrors "go-workschedule/internal/holiday/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, query ListHolidaysQuery) ([]HolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Deactivate(ctx context.Context, id string) error
	GenerateSubstitutes(ctx context.Context, year int) (SubstituteGenerationResponse, error)
	ValidateYear(ctx context.Context, year int) (YearValidationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{db: db, repo: repo, loc: loc, now: time.Now, logger: l}
}

// NewServiceWithClock injects the current-time source for tests exercising
// the one-year substitute window.
func NewServiceWithClock(db *sql.DB, repo Repository, loc *time.Location, now func() time.Time, logger ...*zap.Logger) Service {
	svc := NewService(db, repo, loc, logger...).(*service)
	svc.now = now
	return svc
}

// civilDate rebuilds t as a midnight date in the service timezone without
// converting the instant. Date columns scan back with an arbitrary zone; the
// calendar day is what counts.
func (s *service) civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func (s *service) parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", v, s.loc)
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func (s *service) GetAll(ctx context.Context, query ListHolidaysQuery) ([]HolidayResponse, error) {
	var filter ListFilter

	if query.Year != "" {
		year, err := strconv.Atoi(query.Year)
		if err != nil {
			return nil, holidayerrors.ErrInvalidYear
		}
		filter.Year = &year
	}
	if query.StartDate != "" {
		start, err := s.parseDate(query.StartDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := s.parseDate(query.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, holidayerrors.ErrInvalidDateRange
	}

	holidays, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.mapToListResponse(holidays), nil
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	s.logger.Debug("create holiday requested",
		zap.String("date", req.Date),
		zap.String("name", req.Name),
		zap.Int("year", req.Year),
	)

	date, err := s.parseDate(req.Date)
	if err != nil {
		s.logger.Warn("create holiday validation failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	if req.Year < 2000 || req.Year > 2100 {
		return HolidayResponse{}, holidayerrors.ErrInvalidYear
	}
	if date.Year() != req.Year {
		return HolidayResponse{}, holidayerrors.ErrYearMismatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create holiday begin tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsActiveOnDate(ctx, date)
	if err != nil {
		s.logger.Error("create holiday duplicate check failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	if exists {
		s.logger.Warn("create holiday duplicate date", zap.String("date", req.Date))
		return HolidayResponse{}, holidayerrors.ErrDuplicateDate
	}

	h := &Holiday{
		ID:     uuid.New(),
		Date:   date,
		Name:   req.Name,
		Year:   req.Year,
		Status: StatusActive,
	}

	if err := qtx.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, mapPersistError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create holiday commit failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	s.logger.Info("create holiday success",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.Date),
	)

	return s.mapToResponse(*h), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}
	if req.Name == nil && req.IsActive == nil {
		return HolidayResponse{}, holidayerrors.ErrNoFieldsToUpdate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update holiday begin tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	if req.Name != nil && *req.Name != "" {
		h.Name = *req.Name
	}
	if req.IsActive != nil {
		if *req.IsActive {
			// Re-activating must not break the one-active-holiday-per-date
			// invariant.
			exists, err := qtx.ExistsActiveOnDate(ctx, h.Date)
			if err != nil {
				return HolidayResponse{}, err
			}
			if exists && !h.IsActive() {
				return HolidayResponse{}, holidayerrors.ErrDuplicateDate
			}
			h.Status = StatusActive
		} else {
			h.Status = StatusInactive
		}
	}

	if err := qtx.Update(ctx, h); err != nil {
		s.logger.Error("update holiday persist failed", zap.String("holiday_id", id), zap.Error(err))
		return HolidayResponse{}, mapPersistError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update holiday commit failed", zap.String("holiday_id", id), zap.Error(err))
		return HolidayResponse{}, err
	}
	s.logger.Info("update holiday success", zap.String("holiday_id", id))

	return s.mapToResponse(*h), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	// Idempotent soft delete.
	if !h.IsActive() {
		return tx.Commit()
	}

	h.Status = StatusInactive
	if err := qtx.Update(ctx, h); err != nil {
		s.logger.Error("deactivate holiday persist failed", zap.String("holiday_id", id), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("deactivate holiday success", zap.String("holiday_id", id))
	return nil
}

// GenerateSubstitutes shifts every active weekend holiday of the year to the
// next non-weekend date. The batch deliberately runs without a wrapping
// transaction: one failing row must not abort or poison the others, and a
// partial result is a reportable outcome. Only exact-date collisions with an
// existing active holiday are skipped; running the batch twice generates
// nothing new.
func (s *service) GenerateSubstitutes(ctx context.Context, year int) (SubstituteGenerationResponse, error) {
	if year < 2000 || year > 2100 {
		return SubstituteGenerationResponse{}, holidayerrors.ErrInvalidYear
	}

	s.logger.Debug("generate substitutes requested", zap.Int("year", year))

	active, err := s.repo.FindActiveByYear(ctx, year)
	if err != nil {
		s.logger.Error("generate substitutes load failed", zap.Int("year", year), zap.Error(err))
		return SubstituteGenerationResponse{}, err
	}

	resp := SubstituteGenerationResponse{
		Year:      year,
		Generated: []HolidayResponse{},
	}
	horizon := s.civilDate(s.now().In(s.loc)).AddDate(1, 0, 0)
	batch := make(map[string]bool)

	for _, h := range active {
		date := s.civilDate(h.Date)
		if !isWeekend(date) {
			continue
		}

		candidate := date.AddDate(0, 0, 1)
		for isWeekend(candidate) {
			candidate = candidate.AddDate(0, 0, 1)
		}

		if candidate.After(horizon) {
			continue
		}

		key := candidate.Format("2006-01-02")
		if batch[key] {
			continue
		}

		exists, err := s.repo.ExistsActiveOnDate(ctx, candidate)
		if err != nil {
			resp.Errors = append(resp.Errors, SubstituteError{
				Date:    key,
				Name:    h.Name,
				Message: "duplicate check failed",
			})
			s.logger.Error("substitute duplicate check failed",
				zap.String("date", key),
				zap.Error(err),
			)
			continue
		}
		if exists {
			continue
		}

		sub := &Holiday{
			ID:     uuid.New(),
			Date:   candidate,
			Name:   h.Name + SubstituteSuffix,
			Year:   candidate.Year(),
			Status: StatusActive,
		}
		if err := s.repo.Create(ctx, sub); err != nil {
			mapped := mapPersistError(err)
			if errors.Is(mapped, holidayerrors.ErrDuplicateDate) {
				// Concurrent run won the insert; nothing to report.
				continue
			}
			resp.Errors = append(resp.Errors, SubstituteError{
				Date:    key,
				Name:    sub.Name,
				Message: "insert failed",
			})
			s.logger.Error("substitute insert failed",
				zap.String("date", key),
				zap.Error(err),
			)
			continue
		}

		batch[key] = true
		resp.Generated = append(resp.Generated, s.mapToResponse(*sub))
	}

	s.logger.Info("generate substitutes finished",
		zap.Int("year", year),
		zap.Int("generated", len(resp.Generated)),
		zap.Int("errors", len(resp.Errors)),
	)
	return resp, nil
}

// ValidateYear cross-checks the active holiday set against the fixed national
// holiday table. Warnings never affect validity; errors do.
func (s *service) ValidateYear(ctx context.Context, year int) (YearValidationResponse, error) {
	if year < 2000 || year > 2100 {
		return YearValidationResponse{}, holidayerrors.ErrInvalidYear
	}

	active, err := s.repo.FindActiveByYear(ctx, year)
	if err != nil {
		return YearValidationResponse{}, err
	}

	resp := YearValidationResponse{
		Year:          year,
		TotalHolidays: len(active),
		Errors:        []ValidationIssue{},
		Warnings:      []ValidationIssue{},
	}

	seen := make(map[string]int)
	for _, h := range active {
		date := s.civilDate(h.Date)
		dateStr := date.Format("2006-01-02")
		seen[dateStr]++

		if date.Year() != year {
			resp.Errors = append(resp.Errors, ValidationIssue{
				Type:    "YEAR_MISMATCH",
				Date:    dateStr,
				Name:    h.Name,
				Message: "holiday date does not belong to the requested year",
			})
		}

		monthDay := date.Format("01-02")
		if fixedName, ok := fixedNationalHolidays[monthDay]; ok {
			if h.Name != fixedName && !strings.Contains(h.Name, substituteMarker) {
				resp.Warnings = append(resp.Warnings, ValidationIssue{
					Type:    "CUSTOM_NAME_ON_FIXED_DATE",
					Date:    dateStr,
					Name:    h.Name,
					Message: "custom-named holiday on a fixed national holiday date",
				})
			}
		}
	}

	for dateStr, count := range seen {
		if count > 1 {
			resp.Errors = append(resp.Errors, ValidationIssue{
				Type:    "DUPLICATE_DATE",
				Date:    dateStr,
				Message: "multiple active holidays share this date",
			})
		}
	}

	for _, monthDay := range fixedHolidayDates() {
		dateStr := strconv.Itoa(year) + "-" + monthDay
		if seen[dateStr] == 0 {
			resp.Errors = append(resp.Errors, ValidationIssue{
				Type:    "MISSING_FIXED_HOLIDAY",
				Date:    dateStr,
				Name:    fixedNationalHolidays[monthDay],
				Message: "fixed national holiday is missing from the active set",
			})
		}
	}

	resp.IsValid = len(resp.Errors) == 0
	return resp, nil
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (s *service) mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:       h.ID.String(),
		Date:     s.civilDate(h.Date).Format("2006-01-02"),
		Name:     h.Name,
		Year:     h.Year,
		Status:   h.Status,
		IsActive: h.IsActive(),
	}
}

func (s *service) mapToListResponse(holidays []Holiday) []HolidayResponse {
	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = s.mapToResponse(h)
	}
	return resp
}
