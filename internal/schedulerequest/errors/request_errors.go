package requesterrors

import (
	"net/http"

	"go-workschedule/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrFromDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"from_date is required for a temporary off-day change",
		http.StatusBadRequest,
	)
	ErrPastTargetDate = apperror.New(
		apperror.CodeInvalidInput,
		"target date must not be in the past",
		http.StatusBadRequest,
	)
	ErrTargetIsOffDay = apperror.New(
		apperror.CodeInvalidInput,
		"target date is already a scheduled off-day",
		http.StatusBadRequest,
	)
	ErrProbationHalfDay = apperror.New(
		apperror.CodeInvalidInput,
		"half-day leave is not available during the probation period",
		http.StatusBadRequest,
	)
	ErrTargetIsHoliday = apperror.New(
		apperror.CodeInvalidInput,
		"target date is a public holiday",
		http.StatusBadRequest,
	)
	ErrAdvanceNotice = apperror.New(
		apperror.CodeInvalidInput,
		"temporary changes must be requested ahead of the advance-notice window",
		http.StatusBadRequest,
	)
	ErrDuplicateTempChange = apperror.New(
		apperror.CodeConflict,
		"an approved temporary change already exists on this date",
		http.StatusConflict,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"schedule change request not found",
		http.StatusNotFound,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"request has already been decided",
		http.StatusConflict,
	)
)
