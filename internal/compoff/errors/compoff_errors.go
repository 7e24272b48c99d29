package compofferrors

import (
	"net/http"

	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
)

var (
	ErrCompOffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Comp-off request not found",
		http.StatusNotFound,
	)

	ErrInvalidWorkedDate = apperror.New(
		apperror.CodeInvalidInput,
		"Worked date must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrFutureWorkedDate = apperror.New(
		apperror.CodeInvalidInput,
		"Worked date cannot be in the future",
		http.StatusBadRequest,
	)

	ErrNotWeekendOrHoliday = apperror.New(
		apperror.CodeInvalidInput,
		"Comp-off can only be requested for weekends or holidays",
		http.StatusBadRequest,
	)

	ErrNegativeEarnedDays = apperror.New(
		apperror.CodeInvalidInput,
		"Earned days must not be negative",
		http.StatusBadRequest,
	)

	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"A comp-off request already exists for this date",
		http.StatusConflict,
	)

	ErrNotDirectReport = apperror.New(
		apperror.CodeForbidden,
		"Managers can only act on requests from their direct reports",
		http.StatusForbidden,
	)

	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeInvalidInput,
		"Current user has no employee profile",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid comp-off status",
		http.StatusBadRequest,
	)
)
