package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/heyyrintu/hrms-sub001/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	constraintEmployeeEmail  = "uq_employees_tenant_email"
	constraintEmployeeNumber = "uq_employees_tenant_number"
)

// MapRepositoryError converts gorm/pg errors raised on the employees table.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case constraintEmployeeNumber:
				return employeeerrors.ErrEmployeeNumberAlreadyExists
			case constraintEmployeeEmail:
				return employeeerrors.ErrEmployeeEmailAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraintEmployeeNumber) {
		return employeeerrors.ErrEmployeeNumberAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraintEmployeeEmail) {
		return employeeerrors.ErrEmployeeEmailAlreadyExists
	}

	return err
}
