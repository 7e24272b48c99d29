package performance

import (
	"context"
	"database/sql"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"
	"github.com/heyyrintu/hrms-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=performance_repo.go -destination=mock/performance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateCycle(ctx context.Context, c *ReviewCycle) error
	FindCycles(ctx context.Context, tenantID, status string) ([]ReviewCycle, error)
	FindCycleByID(ctx context.Context, tenantID, id string) (*ReviewCycle, error)
	UpdateDraftCycle(ctx context.Context, tenantID, id string, updates map[string]interface{}) (int64, error)
	DeleteDraftCycle(ctx context.Context, tenantID, id string) (int64, error)
	TransitionCycle(ctx context.Context, tenantID, id, from, to string) (int64, error)
	CountReviewsByStatus(ctx context.Context, tenantID, cycleID string) ([]StatusCount, error)

	CreateReviews(ctx context.Context, reviews []Review) error
	FindReviewByID(ctx context.Context, tenantID, id string) (*Review, error)
	FindReviews(ctx context.Context, tenantID string, filter ReviewFilter) ([]Review, error)
	TransitionReview(ctx context.Context, tenantID, id, from string, updates map[string]interface{}) (int64, error)

	CreateGoal(ctx context.Context, g *Goal) error
	FindGoalByID(ctx context.Context, tenantID, id string) (*Goal, error)
	FindGoalsByReview(ctx context.Context, tenantID, reviewID string) ([]Goal, error)
	UpdateGoal(ctx context.Context, tenantID, id string, updates map[string]interface{}) error
	DeleteGoal(ctx context.Context, tenantID, id string) (int64, error)
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

func (r *repository) CreateCycle(ctx context.Context, c *ReviewCycle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindCycles(ctx context.Context, tenantID, status string) ([]ReviewCycle, error) {
	var out []ReviewCycle
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("start_date DESC").Find(&out).Error
	return out, err
}

func (r *repository) FindCycleByID(ctx context.Context, tenantID, id string) (*ReviewCycle, error) {
	var c ReviewCycle
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) UpdateDraftCycle(ctx context.Context, tenantID, id string, updates map[string]interface{}) (int64, error) {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).
		Model(&ReviewCycle{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ? AND status = ?", id, CycleDraft).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteDraftCycle(ctx context.Context, tenantID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("status = ?", CycleDraft).
		Delete(&ReviewCycle{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) TransitionCycle(ctx context.Context, tenantID, id, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&ReviewCycle{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *repository) CountReviewsByStatus(ctx context.Context, tenantID, cycleID string) ([]StatusCount, error) {
	var out []StatusCount
	err := r.db.WithContext(ctx).
		Model(&Review{}).
		Scopes(tenant.Scope(tenantID)).
		Select("status, COUNT(*) AS count").
		Where("cycle_id = ?", cycleID).
		Group("status").
		Scan(&out).Error
	return out, err
}

func (r *repository) CreateReviews(ctx context.Context, reviews []Review) error {
	if len(reviews) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit("Employee", "Reviewer", "Cycle").
		CreateInBatches(reviews, 200).Error
}

func (r *repository) FindReviewByID(ctx context.Context, tenantID, id string) (*Review, error) {
	var rv Review
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Reviewer").
		Preload("Cycle").
		Scopes(tenant.Scope(tenantID)).
		First(&rv, "id = ?", id).Error
	return &rv, err
}

func (r *repository) FindReviews(ctx context.Context, tenantID string, filter ReviewFilter) ([]Review, error) {
	var out []Review
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Reviewer").
		Preload("Cycle").
		Scopes(tenant.Scope(tenantID))
	if filter.CycleID != "" {
		q = q.Where("cycle_id = ?", filter.CycleID)
	}
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ReviewerID != "" {
		q = q.Where("reviewer_id = ?", filter.ReviewerID)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// TransitionReview applies updates only while the review is still in from.
func (r *repository) TransitionReview(ctx context.Context, tenantID, id, from string, updates map[string]interface{}) (int64, error) {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).
		Model(&Review{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) CreateGoal(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) FindGoalByID(ctx context.Context, tenantID, id string) (*Goal, error) {
	var g Goal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) FindGoalsByReview(ctx context.Context, tenantID, reviewID string) ([]Goal, error) {
	var out []Goal
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("review_id = ?", reviewID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) UpdateGoal(ctx context.Context, tenantID, id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return r.db.WithContext(ctx).
		Model(&Goal{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteGoal(ctx context.Context, tenantID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Goal{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
