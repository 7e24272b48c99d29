package compoff

import (
	"errors"
	"strings"

	compofferrors "github.com/heyyrintu/hrms-sub001/internal/compoff/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintEmployeeDate = "uq_comp_off_employee_date"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return compofferrors.ErrCompOffNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintEmployeeDate {
		return compofferrors.ErrDuplicateRequest
	}
	if strings.Contains(strings.ToLower(err.Error()), constraintEmployeeDate) {
		return compofferrors.ErrDuplicateRequest
	}
	return err
}
