package leave

import (
	"context"
	"database/sql"

	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"
	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	EnsureLeaveType(ctx context.Context, tenantID, code, name string) (*LeaveType, error)
	CreditBalance(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int, days float64) (float64, error)
	FindBalances(ctx context.Context, tenantID, employeeID string, year int) ([]LeaveBalance, error)
	FindLeaveTypes(ctx context.Context, tenantID string) ([]LeaveType, error)
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

// EnsureLeaveType creates the type on first use. Concurrent callers race on
// the unique index and both read back the same row.
func (r *repository) EnsureLeaveType(ctx context.Context, tenantID, code, name string) (*LeaveType, error) {
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO leave_types (tenant_id, name, code, default_days, is_active, created_at, updated_at)
		VALUES (?, ?, ?, 0, true, now(), now())
		ON CONFLICT (tenant_id, code) DO NOTHING
	`, tenantID, name, code).Error
	if err != nil {
		return nil, err
	}

	var lt LeaveType
	err = r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("code = ?", code).
		First(&lt).Error
	return &lt, err
}

// CreditBalance adds days to total_days, creating the row when absent, and
// returns the new total.
func (r *repository) CreditBalance(ctx context.Context, tenantID, employeeID, leaveTypeID string, year int, days float64) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO leave_balances (tenant_id, employee_id, leave_type_id, year, total_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (tenant_id, employee_id, leave_type_id, year) DO UPDATE
		SET total_days = leave_balances.total_days + EXCLUDED.total_days, updated_at = now()
		RETURNING total_days
	`, tenantID, employeeID, leaveTypeID, year, days).Scan(&total).Error
	return total, err
}

func (r *repository) FindBalances(ctx context.Context, tenantID, employeeID string, year int) ([]LeaveBalance, error) {
	var out []LeaveBalance
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) FindLeaveTypes(ctx context.Context, tenantID string) ([]LeaveType, error) {
	var out []LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("name ASC").
		Find(&out).Error
	return out, err
}
