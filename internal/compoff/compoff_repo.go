package compoff

import (
	"context"
	"database/sql"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"
	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=compoff_repo.go -destination=mock/compoff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *CompOffRequest) error
	ExistsForDate(ctx context.Context, tenantID, employeeID string, workedDate time.Time) (bool, error)
	FindByID(ctx context.Context, tenantID, id string) (*CompOffRequest, error)
	FindPending(ctx context.Context, tenantID, id string) (*CompOffRequest, error)
	FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]CompOffRequest, error)
	FindAll(ctx context.Context, tenantID, status string) ([]CompOffRequest, error)
	FindPendingByEmployees(ctx context.Context, tenantID string, employeeIDs []string) ([]CompOffRequest, error)
	Transition(ctx context.Context, tenantID, id, from string, d Decision) (int64, error)
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

func (r *repository) Create(ctx context.Context, req *CompOffRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(req).Error
}

// ExistsForDate ignores status: a rejected request still blocks the date.
func (r *repository) ExistsForDate(ctx context.Context, tenantID, employeeID string, workedDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompOffRequest{}).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ? AND worked_date = ?", employeeID, workedDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*CompOffRequest, error) {
	var req CompOffRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(tenantID)).
		First(&req, "id = ?", id).Error
	return &req, err
}

// FindPending only matches undecided requests, so a decided one reads as missing.
func (r *repository) FindPending(ctx context.Context, tenantID, id string) (*CompOffRequest, error) {
	var req CompOffRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(tenantID)).
		Where("status = ?", StatusPending).
		First(&req, "id = ?", id).Error
	return &req, err
}

func (r *repository) FindByEmployee(ctx context.Context, tenantID, employeeID string) ([]CompOffRequest, error) {
	var out []CompOffRequest
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ?", employeeID).
		Order("worked_date DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) FindAll(ctx context.Context, tenantID, status string) ([]CompOffRequest, error) {
	var out []CompOffRequest
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(tenantID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) FindPendingByEmployees(ctx context.Context, tenantID string, employeeIDs []string) ([]CompOffRequest, error) {
	var out []CompOffRequest
	if len(employeeIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(tenantID)).
		Where("status = ? AND employee_id IN ?", StatusPending, employeeIDs).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// Transition moves a request out of status from. Zero rows affected means
// another caller decided it first.
func (r *repository) Transition(ctx context.Context, tenantID, id, from string, d Decision) (int64, error) {
	updates := map[string]interface{}{
		"status":        d.Status,
		"approver_id":   d.ApproverID,
		"approver_note": d.Note,
		"updated_at":    time.Now(),
	}
	if d.DecidedAt != nil {
		updates["approved_at"] = d.DecidedAt
	}

	res := r.db.WithContext(ctx).
		Model(&CompOffRequest{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}
