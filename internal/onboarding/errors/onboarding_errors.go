package onboardingerrors

import (
	"net/http"

	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
)

var (
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Onboarding template not found",
		http.StatusNotFound,
	)

	ErrTemplateNameExists = apperror.New(
		apperror.CodeConflict,
		"An onboarding template with this name already exists",
		http.StatusConflict,
	)

	ErrTemplateInactive = apperror.New(
		apperror.CodeInvalidInput,
		"Onboarding template is inactive",
		http.StatusBadRequest,
	)

	ErrTemplateInUse = apperror.New(
		apperror.CodeInvalidInput,
		"Template has processes and cannot be deleted; deactivate it instead",
		http.StatusBadRequest,
	)

	ErrTemplateHasNoTasks = apperror.New(
		apperror.CodeInvalidInput,
		"Template must define at least one task",
		http.StatusBadRequest,
	)

	ErrProcessNotFound = apperror.New(
		apperror.CodeNotFound,
		"Onboarding process not found",
		http.StatusNotFound,
	)

	ErrProcessNotDeletable = apperror.New(
		apperror.CodeInvalidInput,
		"Only processes that have not started can be deleted; cancel it instead",
		http.StatusBadRequest,
	)

	ErrProcessNotCancellable = apperror.New(
		apperror.CodeConflict,
		"Process is already completed or cancelled",
		http.StatusConflict,
	)

	ErrProcessCancelled = apperror.New(
		apperror.CodeConflict,
		"Process is cancelled",
		http.StatusConflict,
	)

	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Onboarding task not found",
		http.StatusNotFound,
	)

	ErrTaskForbidden = apperror.New(
		apperror.CodeForbidden,
		"You can only update tasks assigned to you",
		http.StatusForbidden,
	)

	ErrProcessForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this process",
		http.StatusForbidden,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotActive = apperror.New(
		apperror.CodeInvalidInput,
		"Employee is not active",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)

	ErrTargetBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"Target date cannot be before the start date",
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
