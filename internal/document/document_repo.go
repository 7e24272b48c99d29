package document

import (
	"context"
	"database/sql"

	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"
	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, tenantID, id string) (*Document, error)
	FindAll(ctx context.Context, tenantID, employeeID string) ([]Document, error)
	Delete(ctx context.Context, tenantID, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&d, "id = ?", id).Error
	return &d, err
}

// FindAll lists every tenant document when employeeID is empty.
func (r *repository) FindAll(ctx context.Context, tenantID, employeeID string) ([]Document, error) {
	var out []Document
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		Delete(&Document{})
	return res.RowsAffected, res.Error
}
