package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	notFound := apperror.New(apperror.CodeNotFound, "Thing not found", http.StatusNotFound)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"app error", notFound, http.StatusNotFound, apperror.CodeNotFound, "Thing not found"},
		{"wrapped app error", fmt.Errorf("lookup: %w", notFound), http.StatusNotFound, apperror.CodeNotFound, "Thing not found"},
		{"missing status", &apperror.AppError{Code: apperror.CodeConflict, Message: "x"}, http.StatusInternalServerError, apperror.CodeConflict, "x"},
		{"plain error hidden", errors.New("pq: connection refused"), http.StatusInternalServerError, apperror.CodeInternalError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apperror.ToHTTP(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		WorkedDate string `validate:"required"`
		Days       int    `validate:"min=1"`
	}
	v := validator.New()

	err := apperror.MapValidationError(v.Struct(payload{Days: 1}))
	assert.EqualError(t, err, "Worked Date is required")

	err = apperror.MapValidationError(v.Struct(payload{WorkedDate: "2025-01-01"}))
	assert.EqualError(t, err, "Days is invalid")

	err = apperror.MapValidationError(errors.New("EOF"))
	assert.EqualError(t, err, "Invalid input")
}
