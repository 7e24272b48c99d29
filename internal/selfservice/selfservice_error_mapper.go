package selfservice

import (
	"errors"
	"strings"

	selfserviceerrors "github.com/heyyrintu/hrms-sub001/internal/selfservice/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintPending = "uq_change_requests_pending"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return selfserviceerrors.ErrChangeRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintPending {
		return selfserviceerrors.ErrPendingExists
	}
	if strings.Contains(strings.ToLower(err.Error()), constraintPending) {
		return selfserviceerrors.ErrPendingExists
	}
	return err
}
