package performanceerrors

import (
	"net/http"

	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
)

var (
	ErrCycleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Review cycle not found",
		http.StatusNotFound,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date must be after start date",
		http.StatusBadRequest,
	)

	ErrCycleNotDraft = apperror.New(
		apperror.CodeConflict,
		"Only draft review cycles can be changed",
		http.StatusConflict,
	)

	ErrCycleNotActive = apperror.New(
		apperror.CodeConflict,
		"Review cycle is not active",
		http.StatusConflict,
	)

	ErrNoEligibleEmployees = apperror.New(
		apperror.CodeInvalidInput,
		"No active employees with a manager to review",
		http.StatusBadRequest,
	)

	ErrReviewsAlreadyLaunched = apperror.New(
		apperror.CodeConflict,
		"Reviews already exist for this cycle",
		http.StatusConflict,
	)

	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"Performance review not found",
		http.StatusNotFound,
	)

	ErrReviewForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this review",
		http.StatusForbidden,
	)

	ErrReviewNotPending = apperror.New(
		apperror.CodeConflict,
		"Self review has already been submitted",
		http.StatusConflict,
	)

	ErrReviewNotSelfReviewed = apperror.New(
		apperror.CodeConflict,
		"Manager review requires a submitted self review",
		http.StatusConflict,
	)

	ErrReviewCompleted = apperror.New(
		apperror.CodeConflict,
		"Review is completed",
		http.StatusConflict,
	)

	ErrTeamReviewsForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only managers and HR can list team reviews",
		http.StatusForbidden,
	)

	ErrEmployeeContextRequired = apperror.New(
		apperror.CodeInvalidInput,
		"An employee profile is required to list team reviews",
		http.StatusBadRequest,
	)

	ErrInvalidRating = apperror.New(
		apperror.CodeInvalidInput,
		"Ratings must be between 1 and 5",
		http.StatusBadRequest,
	)

	ErrGoalNotFound = apperror.New(
		apperror.CodeNotFound,
		"Goal not found",
		http.StatusNotFound,
	)

	ErrGoalForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only the review's employee can manage its goals",
		http.StatusForbidden,
	)

	ErrInvalidProgress = apperror.New(
		apperror.CodeInvalidInput,
		"Progress must be between 0 and 100",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid status",
		http.StatusBadRequest,
	)

	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeInvalidInput,
		"Current user has no employee profile",
		http.StatusBadRequest,
	)
)
