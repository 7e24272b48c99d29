package performance

import (
	"errors"
	"strings"

	performanceerrors "github.com/heyyrintu/hrms-sub001/internal/performance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintCycleEmployee = "uq_performance_reviews_cycle_employee"

func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintCycleEmployee {
		return performanceerrors.ErrReviewsAlreadyLaunched
	}
	if strings.Contains(strings.ToLower(err.Error()), constraintCycleEmployee) {
		return performanceerrors.ErrReviewsAlreadyLaunched
	}
	return err
}
