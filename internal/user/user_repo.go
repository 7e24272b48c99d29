package user

import (
	"context"
	"errors"

	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, tenantID, id string) (*User, error)
	FindAll(ctx context.Context, tenantID, role string) ([]User, error)
	FindActiveUserIDByEmployee(ctx context.Context, tenantID, employeeID string) (string, error)
	ListActiveUserIDsByRoles(ctx context.Context, tenantID string, roles []string) ([]string, error)
	FirstActiveEmployeeIDByRole(ctx context.Context, tenantID, role string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Employee").
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindAll(ctx context.Context, tenantID, role string) ([]User, error) {
	var users []User
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(tenantID))
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Order("email ASC").Find(&users).Error
	return users, err
}

// FindActiveUserIDByEmployee returns "" when the employee has no active login.
func (r *repository) FindActiveUserIDByEmployee(ctx context.Context, tenantID, employeeID string) (string, error) {
	var u User
	err := r.db.WithContext(ctx).
		Select("id").
		Scopes(tenant.Scope(tenantID)).
		Where("employee_id = ? AND is_active = ?", employeeID, true).
		Order("id ASC").
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.ID.String(), nil
}

func (r *repository) ListActiveUserIDsByRoles(ctx context.Context, tenantID string, roles []string) ([]string, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Scopes(tenant.Scope(tenantID)).
		Where("role IN ? AND is_active = ?", roles, true).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// FirstActiveEmployeeIDByRole picks the employee linked to the lowest user id
// holding role, so the choice is stable across calls. Returns "" if none.
func (r *repository) FirstActiveEmployeeIDByRole(ctx context.Context, tenantID, role string) (string, error) {
	var u User
	err := r.db.WithContext(ctx).
		Select("id", "employee_id").
		Scopes(tenant.Scope(tenantID)).
		Where("role = ? AND is_active = ? AND employee_id IS NOT NULL", role, true).
		Order("id ASC").
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if u.EmployeeID == nil {
		return "", nil
	}
	return u.EmployeeID.String(), nil
}
