package documenterrors

import (
	"net/http"

	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrDocumentForbidden = apperror.New(
		apperror.CodeForbidden,
		"You cannot access this document",
		http.StatusForbidden,
	)

	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"File is required",
		http.StatusBadRequest,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
)
