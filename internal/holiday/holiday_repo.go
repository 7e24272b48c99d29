package holiday

import (
	"context"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	FindByYear(ctx context.Context, tenantID string, year int) ([]Holiday, error)
	ActiveDates(ctx context.Context, tenantID string, year int) ([]time.Time, error)
	Delete(ctx context.Context, tenantID, id string) (*Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func yearBounds(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByYear(ctx context.Context, tenantID string, year int) ([]Holiday, error) {
	from, to := yearBounds(year)
	var out []Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) ActiveDates(ctx context.Context, tenantID string, year int) ([]time.Time, error) {
	from, to := yearBounds(year)
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Scopes(tenant.Scope(tenantID)).
		Where("is_active = ? AND date >= ? AND date < ?", true, from, to).
		Order("date ASC").
		Pluck("date", &dates).Error
	return dates, err
}

// Delete removes the row and returns it so callers know which year to invalidate.
func (r *repository) Delete(ctx context.Context, tenantID, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Holiday{}, "id = ?", id).Error
	return &h, err
}
