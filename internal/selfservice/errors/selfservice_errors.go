package selfserviceerrors

import (
	"net/http"

	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
)

var (
	ErrChangeRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Change request not found",
		http.StatusNotFound,
	)

	ErrFieldNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"Field cannot be changed through self service",
		http.StatusBadRequest,
	)

	ErrInvalidValue = apperror.New(
		apperror.CodeInvalidInput,
		"New value is not valid for this field",
		http.StatusBadRequest,
	)

	ErrPendingExists = apperror.New(
		apperror.CodeConflict,
		"A pending change request already exists for this field",
		http.StatusConflict,
	)

	ErrAlreadyReviewed = apperror.New(
		apperror.CodeConflict,
		"Change request has already been reviewed",
		http.StatusConflict,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrReviewForbidden = apperror.New(
		apperror.CodeForbidden,
		"Only HR can review change requests",
		http.StatusForbidden,
	)

	ErrViewForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this change request",
		http.StatusForbidden,
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
