package schedulerequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-workschedule/internal/events"
	"go-workschedule/internal/messaging/kafka"
	"go-workschedule/internal/schedule"
	scheduleerrors "go-workschedule/internal/schedule/errors"
	requesterrors "go-workschedule/internal/schedulerequest/errors"
	"go-workschedule/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Policy carries the workflow rules that come from configuration.
type Policy struct {
	AdvanceNoticeDays int
	ProbationMonths   int
}

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitRequest) (RequestResponse, error)
	GetAll(ctx context.Context, requesterID string, canReadAll bool, employeeFilter string) ([]RequestResponse, error)
	GetByID(ctx context.Context, requesterID string, canReadAll bool, id string) (RequestResponse, error)
	Approve(ctx context.Context, id, actorID string) (RequestResponse, error)
	Reject(ctx context.Context, id, actorID, reason string) (RequestResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	schedules schedule.Repository
	calc      *schedule.CycleCalculator
	outbox    kafka.OutboxRepository
	policy    Policy
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	schedules schedule.Repository,
	calc *schedule.CycleCalculator,
	outbox kafka.OutboxRepository,
	policy Policy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("schedulerequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedulerequest.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		schedules: schedules,
		calc:      calc,
		outbox:    outbox,
		policy:    policy,
		now:       time.Now,
		logger:    l,
	}
}

func NewServiceWithClock(
	db *sql.DB,
	repo Repository,
	schedules schedule.Repository,
	calc *schedule.CycleCalculator,
	outbox kafka.OutboxRepository,
	policy Policy,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	svc := NewService(db, repo, schedules, calc, outbox, policy, logger...).(*service)
	svc.now = now
	return svc
}

func (s *service) parseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", v, s.calc.Location())
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func (s *service) today() time.Time {
	return s.calc.Normalize(s.now().In(s.calc.Location()))
}

func (s *service) Submit(ctx context.Context, employeeID string, req SubmitRequest) (RequestResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidEmployeeID
	}
	target, err := s.parseDate(req.TargetDate)
	if err != nil {
		return RequestResponse{}, err
	}
	if target.Before(s.today()) {
		return RequestResponse{}, requesterrors.ErrPastTargetDate
	}

	request := &ScheduleChangeRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		RequestType: req.RequestType,
		TargetDate:  target,
		Reason:      req.Reason,
		Status:      StatusPending,
		RequestedAt: s.now(),
	}

	switch req.RequestType {
	case TypeHalfDay:
		if err := s.validateHalfDay(ctx, employeeID, target); err != nil {
			return RequestResponse{}, err
		}
	case TypeTempChange:
		if req.FromDate == "" {
			return RequestResponse{}, requesterrors.ErrFromDateRequired
		}
		from, err := s.parseDate(req.FromDate)
		if err != nil {
			return RequestResponse{}, err
		}
		request.FromDate = &from
		if err := s.validateTempChange(ctx, employeeID, target); err != nil {
			return RequestResponse{}, err
		}
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.logger.Error("submit request persist failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	s.logger.Info("schedule change request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("request_type", request.RequestType),
	)

	return s.mapRequest(request), nil
}

// validateHalfDay rejects a half-day on a date the rotation already gives
// off, and during the probation window after hiring. An employee with no
// roster assignment yet can still request a half-day.
func (s *service) validateHalfDay(ctx context.Context, employeeID string, target time.Time) error {
	hireDate, err := s.schedules.EmployeeHireDate(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return requesterrors.ErrInvalidEmployeeID
		}
		return err
	}
	if s.calc.IsProbation(hireDate, target, s.policy.ProbationMonths) {
		return requesterrors.ErrProbationHalfDay
	}

	assignment, err := s.schedules.FindAssignmentByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	rotation, err := assignment.DecodeRotation()
	if err != nil {
		return err
	}
	isOff, err := s.calc.IsOffDay(s.calc.Normalize(assignment.AnchorDate), target, rotation)
	if err != nil {
		// Targets before the anchor week have no rotation position, so
		// nothing to collide with.
		if errors.Is(err, scheduleerrors.ErrTargetBeforeAnchor) {
			return nil
		}
		return err
	}
	if isOff {
		return requesterrors.ErrTargetIsOffDay
	}
	return nil
}

func (s *service) validateTempChange(ctx context.Context, employeeID string, target time.Time) error {
	exists, err := s.schedules.EmployeeExists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return requesterrors.ErrInvalidEmployeeID
	}

	holidays, err := s.schedules.FindActiveHolidaysBetween(ctx, target, target)
	if err != nil {
		return err
	}
	if len(holidays) > 0 {
		return requesterrors.ErrTargetIsHoliday
	}

	if target.Before(s.today().AddDate(0, 0, s.policy.AdvanceNoticeDays)) {
		return requesterrors.ErrAdvanceNotice
	}

	taken, err := s.repo.HasApprovedTempChangeOn(ctx, employeeID, target)
	if err != nil {
		return err
	}
	if taken {
		return requesterrors.ErrDuplicateTempChange
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, requesterID string, canReadAll bool, employeeFilter string) ([]RequestResponse, error) {
	if !canReadAll {
		employeeFilter = requesterID
	}

	var (
		requests []ScheduleChangeRequest
		err      error
	)
	if employeeFilter != "" {
		if _, parseErr := uuid.Parse(employeeFilter); parseErr != nil {
			return nil, requesterrors.ErrInvalidEmployeeID
		}
		requests, err = s.repo.FindAllByEmployee(ctx, employeeFilter)
	} else {
		requests, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.logger.Error("list requests failed", zap.Error(err))
		return nil, err
	}

	responses := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, s.mapRequest(&requests[i]))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, requesterID string, canReadAll bool, id string) (RequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	// Hide other employees' requests from non-admins as if they do not exist.
	if !canReadAll && request.EmployeeID.String() != requesterID {
		return RequestResponse{}, requesterrors.ErrRequestNotFound
	}
	return s.mapRequest(request), nil
}

func (s *service) Approve(ctx context.Context, id, actorID string) (RequestResponse, error) {
	return s.decide(ctx, id, actorID, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, id, actorID, reason string) (RequestResponse, error) {
	return s.decide(ctx, id, actorID, StatusRejected, reason)
}

// decide flips a PENDING request to its final status. The conditional update
// guarantees exactly one winner when two admins act at once; the loser gets a
// conflict. The decision event is staged in the outbox inside the same
// transaction.
func (s *service) decide(ctx context.Context, id, actorID, status, reason string) (RequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidRequestID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}

	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return RequestResponse{}, err
	}
	if !request.IsPending() {
		return RequestResponse{}, requesterrors.ErrAlreadyDecided
	}

	if status == StatusApproved && request.RequestType == TypeTempChange {
		taken, err := s.repo.HasApprovedTempChangeOn(ctx, request.EmployeeID.String(), request.TargetDate)
		if err != nil {
			return RequestResponse{}, err
		}
		if taken {
			return RequestResponse{}, requesterrors.ErrDuplicateTempChange
		}
	}

	decidedAt := s.now()
	request.Status = status
	request.DecidedBy = &actorUUID
	request.DecidedAt = &decidedAt
	if status == StatusRejected {
		request.RejectionReason = &reason
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide request begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	won, err := s.repo.WithTx(tx).DecideIfPending(ctx, request)
	if err != nil {
		s.logger.Error("decide request update failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}
	if !won {
		return RequestResponse{}, requesterrors.ErrAlreadyDecided
	}

	if err := s.enqueueDecisionEvent(ctx, tx, request); err != nil {
		s.logger.Error("decide request enqueue event failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide request commit failed", zap.Error(err))
		return RequestResponse{}, err
	}
	s.logger.Info("schedule change request decided",
		zap.String("request_id", id),
		zap.String("status", status),
		zap.String("decided_by", actorID),
	)

	return s.mapRequest(request), nil
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *sql.Tx, request *ScheduleChangeRequest) error {
	eventType := "schedule_request.approved"
	if request.Status == StatusRejected {
		eventType = "schedule_request.rejected"
	}

	payload, err := json.Marshal(events.ScheduleRequestDecidedEvent{
		EventType:   eventType,
		RequestID:   request.ID.String(),
		EmployeeID:  request.EmployeeID.String(),
		RequestType: request.RequestType,
		TargetDate:  s.calc.Normalize(request.TargetDate).Format("2006-01-02"),
		Status:      request.Status,
		DecidedBy:   request.DecidedBy.String(),
		OccurredAt:  *request.DecidedAt,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:          uuid.New().String(),
		RequestID:   contextutil.GetRequestID(ctx),
		AggregateID: request.ID.String(),
		EventType:   eventType,
		Topic:       events.ScheduleRequestDecidedTopic,
		Payload:     payload,
		Status:      kafka.OutboxStatusPending,
	})
}

func (s *service) mapRequest(r *ScheduleChangeRequest) RequestResponse {
	resp := RequestResponse{
		ID:          r.ID.String(),
		EmployeeID:  r.EmployeeID.String(),
		RequestType: r.RequestType,
		TargetDate:  s.calc.Normalize(r.TargetDate).Format("2006-01-02"),
		Reason:      r.Reason,
		Status:      r.Status,
		RequestedAt: r.RequestedAt.Format(time.RFC3339),
	}
	if r.FromDate != nil {
		from := s.calc.Normalize(*r.FromDate).Format("2006-01-02")
		resp.FromDate = &from
	}
	if r.DecidedBy != nil {
		decidedBy := r.DecidedBy.String()
		resp.DecidedBy = &decidedBy
	}
	if r.DecidedAt != nil {
		decidedAt := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	resp.RejectionReason = r.RejectionReason
	return resp
}
