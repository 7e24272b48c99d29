package employee

import (
	"context"
	"database/sql"

	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"
	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, tenantID, id string) (*Employee, error)
	FindAll(ctx context.Context, tenantID, status string) ([]Employee, error)
	FindDirectReports(ctx context.Context, tenantID, managerID string) ([]Employee, error)
	DirectReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error)
	FindActiveWithManager(ctx context.Context, tenantID string) ([]Employee, error)
	UpdateField(ctx context.Context, tenantID, id, column string, value any) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindAll(ctx context.Context, tenantID, status string) ([]Employee, error) {
	var out []Employee
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("first_name ASC, last_name ASC").Find(&out).Error
	return out, err
}

func (r *repository) FindDirectReports(ctx context.Context, tenantID, managerID string) ([]Employee, error) {
	var out []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("manager_id = ?", managerID).
		Order("first_name ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) DirectReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(tenantID)).
		Where("manager_id = ?", managerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) FindActiveWithManager(ctx context.Context, tenantID string) ([]Employee, error) {
	var out []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("status = ? AND manager_id IS NOT NULL", StatusActive).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// UpdateField writes exactly one column; callers must pass a whitelisted column.
func (r *repository) UpdateField(ctx context.Context, tenantID, id, column string, value any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		UpdateColumn(column, value)
	return res.RowsAffected, res.Error
}
