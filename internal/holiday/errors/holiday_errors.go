package holidayerrors

import (
	"net/http"

	"go-workschedule/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be between 2000 and 2100",
		http.StatusBadRequest,
	)
	ErrYearMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"year does not match the year of the given date",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrNoFieldsToUpdate = apperror.New(
		apperror.CodeInvalidInput,
		"at least one of name or is_active must be given",
		http.StatusBadRequest,
	)
	ErrDuplicateDate = apperror.New(
		apperror.CodeConflict,
		"an active holiday already exists on this date",
		http.StatusConflict,
	)
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrInvalidHolidayID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid holiday id",
		http.StatusBadRequest,
	)
)
