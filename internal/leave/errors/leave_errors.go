package leaveerrors

import (
	"net/http"

	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)

	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"Year must be between 2000 and 2100",
		http.StatusBadRequest,
	)

	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeInvalidInput,
		"Current user has no employee profile",
		http.StatusBadRequest,
	)

	ErrInvalidCreditDays = apperror.New(
		apperror.CodeInvalidInput,
		"Credited days must not be negative",
		http.StatusBadRequest,
	)
)
