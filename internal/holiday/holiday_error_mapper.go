package holiday

import (
	"errors"
	"strings"

	holidayerrors "github.com/heyyrintu/hrms-sub001/internal/holiday/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintHolidayDate = "uq_holidays_tenant_date"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return holidayerrors.ErrHolidayNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintHolidayDate {
		return holidayerrors.ErrHolidayAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), constraintHolidayDate) {
		return holidayerrors.ErrHolidayAlreadyExists
	}
	return err
}
