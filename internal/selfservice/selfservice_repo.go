package selfservice

import (
	"context"
	"database/sql"

	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"
	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=selfservice_repo.go -destination=mock/selfservice_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *ChangeRequest) error
	HasPending(ctx context.Context, tenantID, employeeID, field string) (bool, error)
	FindByID(ctx context.Context, tenantID, id string) (*ChangeRequest, error)
	FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]ChangeRequest, error)
	FindAll(ctx context.Context, tenantID, status string) ([]ChangeRequest, error)
	MarkReviewed(ctx context.Context, tenantID, id string, review Review) (int64, error)
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

func (r *repository) Create(ctx context.Context, cr *ChangeRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(cr).Error
}

func (r *repository) HasPending(ctx context.Context, tenantID, employeeID, field string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ChangeRequest{}).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ? AND field_name = ? AND status = ?", employeeID, field, StatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*ChangeRequest, error) {
	var cr ChangeRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(tenantID)).
		First(&cr, "id = ?", id).Error
	return &cr, err
}

func (r *repository) FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]ChangeRequest, error) {
	var out []ChangeRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) FindAll(ctx context.Context, tenantID, status string) ([]ChangeRequest, error) {
	var out []ChangeRequest
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(tenantID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// MarkReviewed only touches a PENDING request.
func (r *repository) MarkReviewed(ctx context.Context, tenantID, id string, review Review) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&ChangeRequest{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":      review.Status,
			"reviewed_by": review.ReviewedBy,
			"review_note": review.Note,
			"reviewed_at": review.ReviewedAt,
			"updated_at":  review.ReviewedAt,
		})
	return res.RowsAffected, res.Error
}
