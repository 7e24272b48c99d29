package storageerrors

import (
	"net/http"

	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
)

var (
	ErrEmptyFile = apperror.New(
		apperror.CodeInvalidInput,
		"File is empty",
		http.StatusBadRequest,
	)

	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the maximum upload size",
		http.StatusRequestEntityTooLarge,
	)

	ErrInvalidKey = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid file key",
		http.StatusBadRequest,
	)

	ErrFileNotFound = apperror.New(
		apperror.CodeNotFound,
		"File not found",
		http.StatusNotFound,
	)
)
