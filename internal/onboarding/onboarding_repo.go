package onboarding

import (
	"context"
	"database/sql"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"
	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

var openTaskStatuses = []string{TaskPending, TaskInProgress}

//go:generate mockgen -source=onboarding_repo.go -destination=mock/onboarding_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateTemplate(ctx context.Context, t *Template) error
	FindTemplates(ctx context.Context, tenantID string, activeOnly bool) ([]Template, error)
	FindTemplateByID(ctx context.Context, tenantID, id string) (*Template, error)
	SaveTemplate(ctx context.Context, t *Template) error
	DeleteTemplate(ctx context.Context, tenantID, id string) (int64, error)
	CountProcessesByTemplate(ctx context.Context, tenantID, templateID string) (int64, error)

	CreateProcess(ctx context.Context, p *Process) error
	CreateTasks(ctx context.Context, tasks []Task) error
	FindProcesses(ctx context.Context, tenantID, status, employeeID string) ([]Process, error)
	FindProcessByID(ctx context.Context, tenantID, id string) (*Process, error)
	TransitionProcess(ctx context.Context, tenantID, id string, from []string, to string, completedAt *time.Time) (int64, error)
	DeleteProcess(ctx context.Context, tenantID, id string) (int64, error)

	FindTaskByID(ctx context.Context, tenantID, id string) (*Task, error)
	FindTasksByAssignee(ctx context.Context, tenantID, assigneeID string) ([]Task, error)
	UpdateTask(ctx context.Context, tenantID, id string, updates map[string]interface{}) error
	CountOpenTasks(ctx context.Context, tenantID, processID string) (int64, error)
	SkipOpenTasks(ctx context.Context, tenantID, processID string) (int64, error)
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

func (r *repository) CreateTemplate(ctx context.Context, t *Template) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTemplates(ctx context.Context, tenantID string, activeOnly bool) ([]Template, error) {
	var out []Template
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *repository) FindTemplateByID(ctx context.Context, tenantID, id string) (*Template, error) {
	var t Template
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) SaveTemplate(ctx context.Context, t *Template) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) DeleteTemplate(ctx context.Context, tenantID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Template{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) CountProcessesByTemplate(ctx context.Context, tenantID, templateID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Process{}).
		Scopes(tenant.Scope(tenantID)).
		Where("template_id = ?", templateID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateProcess(ctx context.Context, p *Process) error {
	return r.db.WithContext(ctx).Omit("Tasks", "Employee").Create(p).Error
}

func (r *repository) CreateTasks(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Process").CreateInBatches(tasks, 100).Error
}

func (r *repository) FindProcesses(ctx context.Context, tenantID, status, employeeID string) ([]Process, error) {
	var out []Process
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(tenantID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) FindProcessByID(ctx context.Context, tenantID, id string) (*Process, error) {
	var p Process
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Scopes(tenant.Scope(tenantID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

// TransitionProcess only moves a process currently in one of from.
func (r *repository) TransitionProcess(ctx context.Context, tenantID, id string, from []string, to string, completedAt *time.Time) (int64, error) {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	if completedAt != nil {
		updates["completed_at"] = completedAt
	}

	res := r.db.WithContext(ctx).
		Model(&Process{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// DeleteProcess removes a NOT_STARTED process and its tasks.
func (r *repository) DeleteProcess(ctx context.Context, tenantID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("status = ?", ProcessNotStarted).
		Delete(&Process{}, "id = ?", id)
	if res.Error != nil || res.RowsAffected == 0 {
		return res.RowsAffected, res.Error
	}

	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Task{}, "process_id = ?", id).Error
	return res.RowsAffected, err
}

func (r *repository) FindTaskByID(ctx context.Context, tenantID, id string) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Preload("Process").
		Preload("Process.Employee").
		Scopes(tenant.Scope(tenantID)).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindTasksByAssignee(ctx context.Context, tenantID, assigneeID string) ([]Task, error) {
	var out []Task
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("assignee_id = ? AND status IN ?", assigneeID, openTaskStatuses).
		Order("due_date ASC NULLS LAST, sort_order ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) UpdateTask(ctx context.Context, tenantID, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&Task{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) CountOpenTasks(ctx context.Context, tenantID, processID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Task{}).
		Scopes(tenant.Scope(tenantID)).
		Where("process_id = ? AND status IN ?", processID, openTaskStatuses).
		Count(&count).Error
	return count, err
}

// SkipOpenTasks leaves COMPLETED and SKIPPED tasks as they are.
func (r *repository) SkipOpenTasks(ctx context.Context, tenantID, processID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Task{}).
		Scopes(tenant.Scope(tenantID)).
		Where("process_id = ? AND status IN ?", processID, openTaskStatuses).
		Updates(map[string]interface{}{"status": TaskSkipped, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}
