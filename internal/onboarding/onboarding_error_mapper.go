package onboarding

import (
	"errors"
	"strings"

	onboardingerrors "github.com/heyyrintu/hrms-sub001/internal/onboarding/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const constraintTemplateName = "uq_onboarding_templates_tenant_name"

// mapRepositoryError maps errors using notFound for missing rows.
func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintTemplateName {
		return onboardingerrors.ErrTemplateNameExists
	}
	if strings.Contains(strings.ToLower(err.Error()), constraintTemplateName) {
		return onboardingerrors.ErrTemplateNameExists
	}
	return err
}
