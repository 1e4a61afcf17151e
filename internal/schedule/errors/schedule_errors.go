package scheduleerrors

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
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrRangeTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"date range must not exceed 92 days",
		http.StatusBadRequest,
	)
	ErrInvalidCount = apperror.New(
		apperror.CodeInvalidInput,
		"count must be between 1 and 30",
		http.StatusBadRequest,
	)
	ErrInvalidRotation = apperror.New(
		apperror.CodeInvalidInput,
		"rotation must map cycle weeks 0-3 to weekday names",
		http.StatusBadRequest,
	)
	ErrTargetBeforeAnchor = apperror.New(
		apperror.CodeInvalidInput,
		"target date precedes the cycle anchor week",
		http.StatusBadRequest,
	)
	ErrWeekMisaligned = apperror.New(
		apperror.CodeInvalidInput,
		"week boundary arithmetic produced a partial week",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"no schedule assignment exists for this employee",
		http.StatusNotFound,
	)
)
