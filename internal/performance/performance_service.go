package performance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/employee"
	"github.com/heyyrintu/hrms-sub001/internal/notification"
	performanceerrors "github.com/heyyrintu/hrms-sub001/internal/performance/errors"
	"github.com/heyyrintu/hrms-sub001/internal/policy"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// EligibleEmployees is satisfied by employee.Repository.
type EligibleEmployees interface {
	FindActiveWithManager(ctx context.Context, tenantID string) ([]employee.Employee, error)
}

//go:generate mockgen -source=performance_service.go -destination=mock/performance_service_mock.go -package=mock
type Service interface {
	CreateCycle(ctx context.Context, tenantID string, req CreateCycleRequest) (CycleResponse, error)
	ListCycles(ctx context.Context, tenantID, status string) ([]CycleResponse, error)
	GetCycle(ctx context.Context, tenantID, id string) (CycleResponse, error)
	UpdateCycle(ctx context.Context, tenantID, id string, req UpdateCycleRequest) (CycleResponse, error)
	DeleteCycle(ctx context.Context, tenantID, id string) error
	LaunchCycle(ctx context.Context, actor domain.Actor, id string) (CycleResponse, error)
	CompleteCycle(ctx context.Context, tenantID, id string) (CycleResponse, error)
	CycleReportPDF(ctx context.Context, tenantID, id string) ([]byte, string, error)

	ListCycleReviews(ctx context.Context, tenantID, cycleID string) ([]ReviewResponse, error)
	ListMyReviews(ctx context.Context, actor domain.Actor) ([]ReviewResponse, error)
	GetTeamReviews(ctx context.Context, actor domain.Actor, cycleID string) ([]ReviewResponse, error)
	GetReview(ctx context.Context, actor domain.Actor, id string) (ReviewResponse, error)
	SubmitSelfReview(ctx context.Context, actor domain.Actor, id string, req SelfReviewRequest) (ReviewResponse, error)
	SubmitManagerReview(ctx context.Context, actor domain.Actor, id string, req ManagerReviewRequest) (ReviewResponse, error)

	CreateGoal(ctx context.Context, actor domain.Actor, reviewID string, req CreateGoalRequest) (GoalResponse, error)
	ListGoals(ctx context.Context, actor domain.Actor, reviewID string) ([]GoalResponse, error)
	UpdateGoal(ctx context.Context, actor domain.Actor, id string, req UpdateGoalRequest) (GoalResponse, error)
	DeleteGoal(ctx context.Context, actor domain.Actor, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  EligibleEmployees
	policy     policy.Evaluator
	dispatcher notification.Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EligibleEmployees,
	evaluator policy.Evaluator,
	dispatcher notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("performance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		policy:     evaluator,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) CreateCycle(ctx context.Context, tenantID string, req CreateCycleRequest) (CycleResponse, error) {
	s.logger.Debug("create review cycle requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", tenantID),
		zap.String("name", req.Name),
	)

	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return CycleResponse{}, performanceerrors.ErrCycleNotFound
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create review cycle invalid dates", zap.Error(err))
		return CycleResponse{}, err
	}

	c := &ReviewCycle{
		TenantID:    tenantUUID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      CycleDraft,
	}
	if err := s.repo.CreateCycle(ctx, c); err != nil {
		s.logger.Error("create review cycle failed", zap.Error(err))
		return CycleResponse{}, err
	}

	s.logger.Info("create review cycle success", zap.String("cycle_id", c.ID.String()))
	return mapCycleToResponse(*c, nil), nil
}

func (s *service) ListCycles(ctx context.Context, tenantID, status string) ([]CycleResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "", CycleDraft, CycleActive, CycleCompleted:
	default:
		return nil, performanceerrors.ErrInvalidStatus
	}

	rows, err := s.repo.FindCycles(ctx, tenantID, status)
	if err != nil {
		s.logger.Error("list review cycles failed", zap.Error(err))
		return nil, err
	}

	out := make([]CycleResponse, len(rows))
	for i, c := range rows {
		out[i] = mapCycleToResponse(c, nil)
	}
	return out, nil
}

func (s *service) GetCycle(ctx context.Context, tenantID, id string) (CycleResponse, error) {
	c, err := s.findCycle(ctx, tenantID, id)
	if err != nil {
		return CycleResponse{}, err
	}

	counts, err := s.repo.CountReviewsByStatus(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("count cycle reviews failed", zap.Error(err))
		return CycleResponse{}, err
	}
	return mapCycleToResponse(*c, counts), nil
}

func (s *service) UpdateCycle(ctx context.Context, tenantID, id string, req UpdateCycleRequest) (CycleResponse, error) {
	s.logger.Debug("update review cycle requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("cycle_id", id),
	)

	c, err := s.findCycle(ctx, tenantID, id)
	if err != nil {
		return CycleResponse{}, err
	}
	if c.Status != CycleDraft {
		s.logger.Warn("update review cycle not draft", zap.String("cycle_id", id), zap.String("status", c.Status))
		return CycleResponse{}, performanceerrors.ErrCycleNotDraft
	}

	startText, endText := c.StartDate.Format(dateLayout), c.EndDate.Format(dateLayout)
	if req.StartDate != nil {
		startText = *req.StartDate
	}
	if req.EndDate != nil {
		endText = *req.EndDate
	}
	start, end, err := parseRange(startText, endText)
	if err != nil {
		return CycleResponse{}, err
	}

	updates := map[string]interface{}{
		"start_date": start,
		"end_date":   end,
	}
	c.StartDate, c.EndDate = start, end
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
		updates["name"] = c.Name
	}
	if req.Description != nil {
		c.Description = req.Description
		updates["description"] = *req.Description
	}

	n, err := s.repo.UpdateDraftCycle(ctx, tenantID, id, updates)
	if err != nil {
		s.logger.Error("update review cycle failed", zap.Error(err))
		return CycleResponse{}, err
	}
	if n == 0 {
		return CycleResponse{}, performanceerrors.ErrCycleNotDraft
	}

	s.logger.Info("update review cycle success", zap.String("cycle_id", id))
	return mapCycleToResponse(*c, nil), nil
}

func (s *service) DeleteCycle(ctx context.Context, tenantID, id string) error {
	c, err := s.findCycle(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if c.Status != CycleDraft {
		s.logger.Warn("delete review cycle not draft", zap.String("cycle_id", id), zap.String("status", c.Status))
		return performanceerrors.ErrCycleNotDraft
	}

	n, err := s.repo.DeleteDraftCycle(ctx, tenantID, id)
	if err != nil {
		s.logger.Error("delete review cycle failed", zap.Error(err))
		return err
	}
	if n == 0 {
		return performanceerrors.ErrCycleNotDraft
	}

	s.logger.Info("delete review cycle success", zap.String("cycle_id", id))
	return nil
}

// LaunchCycle snapshots every active employee with a manager into one review,
// reviewed by that manager.
func (s *service) LaunchCycle(ctx context.Context, actor domain.Actor, id string) (CycleResponse, error) {
	s.logger.Debug("launch review cycle requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", actor.TenantID),
		zap.String("cycle_id", id),
	)

	c, err := s.findCycle(ctx, actor.TenantID, id)
	if err != nil {
		return CycleResponse{}, err
	}
	if c.Status != CycleDraft {
		s.logger.Warn("launch review cycle not draft", zap.String("cycle_id", id), zap.String("status", c.Status))
		return CycleResponse{}, performanceerrors.ErrCycleNotDraft
	}

	eligible, err := s.employees.FindActiveWithManager(ctx, actor.TenantID)
	if err != nil {
		s.logger.Error("launch review cycle employee lookup failed", zap.Error(err))
		return CycleResponse{}, err
	}
	if len(eligible) == 0 {
		s.logger.Warn("launch review cycle without eligible employees", zap.String("cycle_id", id))
		return CycleResponse{}, performanceerrors.ErrNoEligibleEmployees
	}

	reviews := make([]Review, 0, len(eligible))
	for _, e := range eligible {
		if e.ManagerID == nil {
			continue
		}
		reviews = append(reviews, Review{
			TenantID:   c.TenantID,
			CycleID:    c.ID,
			EmployeeID: e.ID,
			ReviewerID: *e.ManagerID,
			Status:     ReviewPending,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("launch review cycle begin tx failed", zap.Error(err))
		return CycleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	n, err := qtx.TransitionCycle(ctx, actor.TenantID, id, CycleDraft, CycleActive)
	if err != nil {
		s.logger.Error("launch review cycle transition failed", zap.Error(err))
		return CycleResponse{}, err
	}
	if n == 0 {
		s.logger.Warn("review cycle launched concurrently", zap.String("cycle_id", id))
		return CycleResponse{}, performanceerrors.ErrCycleNotDraft
	}

	if err := qtx.CreateReviews(ctx, reviews); err != nil {
		s.logger.Error("launch review cycle create reviews failed", zap.Error(err))
		return CycleResponse{}, mapRepositoryError(err, performanceerrors.ErrCycleNotFound)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("launch review cycle commit failed", zap.Error(err))
		return CycleResponse{}, err
	}

	for _, rv := range reviews {
		s.dispatcher.Dispatch(ctx, notification.ToEmployee(actor.TenantID, rv.EmployeeID.String(),
			notification.TypeReviewCycleLaunched,
			"Performance review started",
			fmt.Sprintf("The review cycle %q has started. Please submit your self review.", c.Name),
			"/performance/reviews/me",
		))
	}

	c.Status = CycleActive
	s.logger.Info("launch review cycle success",
		zap.String("cycle_id", id),
		zap.Int("reviews", len(reviews)),
	)
	return mapCycleToResponse(*c, []StatusCount{{Status: ReviewPending, Count: int64(len(reviews))}}), nil
}

// CompleteCycle does not look at individual review progress.
func (s *service) CompleteCycle(ctx context.Context, tenantID, id string) (CycleResponse, error) {
	c, err := s.findCycle(ctx, tenantID, id)
	if err != nil {
		return CycleResponse{}, err
	}

	n, err := s.repo.TransitionCycle(ctx, tenantID, id, CycleActive, CycleCompleted)
	if err != nil {
		s.logger.Error("complete review cycle failed", zap.Error(err))
		return CycleResponse{}, err
	}
	if n == 0 {
		s.logger.Warn("complete review cycle not active", zap.String("cycle_id", id), zap.String("status", c.Status))
		return CycleResponse{}, performanceerrors.ErrCycleNotActive
	}

	c.Status = CycleCompleted
	s.logger.Info("complete review cycle success", zap.String("cycle_id", id))
	return mapCycleToResponse(*c, nil), nil
}

func (s *service) CycleReportPDF(ctx context.Context, tenantID, id string) ([]byte, string, error) {
	c, err := s.findCycle(ctx, tenantID, id)
	if err != nil {
		return nil, "", err
	}

	reviews, err := s.repo.FindReviews(ctx, tenantID, ReviewFilter{CycleID: id})
	if err != nil {
		s.logger.Error("cycle report review lookup failed", zap.Error(err))
		return nil, "", err
	}

	data, err := renderCycleReport(*c, reviews)
	if err != nil {
		s.logger.Error("cycle report render failed", zap.Error(err))
		return nil, "", err
	}
	return data, fmt.Sprintf("review-cycle-%s.pdf", c.ID.String()), nil
}

func (s *service) ListCycleReviews(ctx context.Context, tenantID, cycleID string) ([]ReviewResponse, error) {
	if _, err := s.findCycle(ctx, tenantID, cycleID); err != nil {
		return nil, err
	}
	return s.listReviews(ctx, tenantID, ReviewFilter{CycleID: cycleID})
}

func (s *service) ListMyReviews(ctx context.Context, actor domain.Actor) ([]ReviewResponse, error) {
	if actor.EmployeeID == "" {
		return nil, performanceerrors.ErrNoEmployeeProfile
	}
	return s.listReviews(ctx, actor.TenantID, ReviewFilter{EmployeeID: actor.EmployeeID})
}

// GetTeamReviews scopes managers to reviews they are the reviewer of.
func (s *service) GetTeamReviews(ctx context.Context, actor domain.Actor, cycleID string) ([]ReviewResponse, error) {
	allowed, err := s.policy.Allow(policy.SubjectOf(actor), policy.Resource{Kind: policy.KindReview}, policy.ActListTeam)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.logger.Warn("team reviews forbidden", zap.String("role", actor.Role))
		return nil, performanceerrors.ErrTeamReviewsForbidden
	}
	if cycleID != "" {
		if _, err := uuid.Parse(cycleID); err != nil {
			return nil, performanceerrors.ErrCycleNotFound
		}
	}

	filter := ReviewFilter{CycleID: cycleID}
	if !actor.IsAdmin() {
		if actor.EmployeeID == "" {
			return nil, performanceerrors.ErrEmployeeContextRequired
		}
		filter.ReviewerID = actor.EmployeeID
	}
	return s.listReviews(ctx, actor.TenantID, filter)
}

func (s *service) GetReview(ctx context.Context, actor domain.Actor, id string) (ReviewResponse, error) {
	rv, err := s.findReview(ctx, actor.TenantID, id)
	if err != nil {
		return ReviewResponse{}, err
	}
	if err := s.authorizeReview(actor, rv, policy.ActRead); err != nil {
		return ReviewResponse{}, err
	}
	return mapReviewToResponse(*rv), nil
}

func (s *service) SubmitSelfReview(ctx context.Context, actor domain.Actor, id string, req SelfReviewRequest) (ReviewResponse, error) {
	s.logger.Debug("submit self review requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("review_id", id),
		zap.String("employee_id", actor.EmployeeID),
	)

	if !validRating(req.SelfRating) {
		return ReviewResponse{}, performanceerrors.ErrInvalidRating
	}

	rv, err := s.findReview(ctx, actor.TenantID, id)
	if err != nil {
		return ReviewResponse{}, err
	}
	if err := s.authorizeReview(actor, rv, policy.ActSelfSubmit); err != nil {
		s.logger.Warn("submit self review forbidden", zap.String("review_id", id))
		return ReviewResponse{}, err
	}
	if rv.Status != ReviewPending {
		s.logger.Warn("submit self review out of order", zap.String("review_id", id), zap.String("status", rv.Status))
		return ReviewResponse{}, performanceerrors.ErrReviewNotPending
	}

	submittedAt := s.now().UTC()
	comments := strings.TrimSpace(req.SelfComments)
	updates := map[string]interface{}{
		"status":            ReviewSelfReview,
		"self_rating":       req.SelfRating,
		"self_comments":     comments,
		"self_submitted_at": submittedAt,
	}

	n, err := s.repo.TransitionReview(ctx, actor.TenantID, id, ReviewPending, updates)
	if err != nil {
		s.logger.Error("submit self review failed", zap.Error(err))
		return ReviewResponse{}, err
	}
	if n == 0 {
		s.logger.Warn("self review submitted concurrently", zap.String("review_id", id))
		return ReviewResponse{}, performanceerrors.ErrReviewNotPending
	}

	rv.Status = ReviewSelfReview
	rv.SelfRating = &req.SelfRating
	rv.SelfComments = &comments
	rv.SelfSubmittedAt = &submittedAt

	s.dispatcher.Dispatch(ctx, notification.ToEmployee(actor.TenantID, rv.ReviewerID.String(),
		notification.TypeSelfReviewSubmitted,
		"Self review submitted",
		fmt.Sprintf("%s submitted a self review and is waiting for your review.", displayName(rv.Employee, "An employee")),
		"/performance/reviews/"+id,
	))

	s.logger.Info("submit self review success", zap.String("review_id", id))
	return mapReviewToResponse(*rv), nil
}

func (s *service) SubmitManagerReview(ctx context.Context, actor domain.Actor, id string, req ManagerReviewRequest) (ReviewResponse, error) {
	s.logger.Debug("submit manager review requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("review_id", id),
		zap.String("actor_id", actor.EmployeeID),
	)

	if !validRating(req.ManagerRating) || !validRating(req.OverallRating) {
		return ReviewResponse{}, performanceerrors.ErrInvalidRating
	}

	rv, err := s.findReview(ctx, actor.TenantID, id)
	if err != nil {
		return ReviewResponse{}, err
	}
	if err := s.authorizeReview(actor, rv, policy.ActManagerSubmit); err != nil {
		s.logger.Warn("submit manager review forbidden", zap.String("review_id", id), zap.String("role", actor.Role))
		return ReviewResponse{}, err
	}
	if rv.Status != ReviewSelfReview {
		s.logger.Warn("submit manager review out of order", zap.String("review_id", id), zap.String("status", rv.Status))
		return ReviewResponse{}, performanceerrors.ErrReviewNotSelfReviewed
	}

	submittedAt := s.now().UTC()
	comments := strings.TrimSpace(req.ManagerComments)
	updates := map[string]interface{}{
		"status":               ReviewCompleted,
		"manager_rating":       req.ManagerRating,
		"manager_comments":     comments,
		"overall_rating":       req.OverallRating,
		"manager_submitted_at": submittedAt,
	}

	n, err := s.repo.TransitionReview(ctx, actor.TenantID, id, ReviewSelfReview, updates)
	if err != nil {
		s.logger.Error("submit manager review failed", zap.Error(err))
		return ReviewResponse{}, err
	}
	if n == 0 {
		s.logger.Warn("manager review submitted concurrently", zap.String("review_id", id))
		return ReviewResponse{}, performanceerrors.ErrReviewNotSelfReviewed
	}

	rv.Status = ReviewCompleted
	rv.ManagerRating = &req.ManagerRating
	rv.ManagerComments = &comments
	rv.OverallRating = &req.OverallRating
	rv.ManagerSubmittedAt = &submittedAt

	s.dispatcher.Dispatch(ctx, notification.ToEmployee(actor.TenantID, rv.EmployeeID.String(),
		notification.TypeReviewCompleted,
		"Performance review completed",
		fmt.Sprintf("Your performance review is complete. Overall rating: %d/%d.", req.OverallRating, MaxRating),
		"/performance/reviews/"+id,
	))

	s.logger.Info("submit manager review success", zap.String("review_id", id))
	return mapReviewToResponse(*rv), nil
}

func (s *service) CreateGoal(ctx context.Context, actor domain.Actor, reviewID string, req CreateGoalRequest) (GoalResponse, error) {
	rv, err := s.findReview(ctx, actor.TenantID, reviewID)
	if err != nil {
		return GoalResponse{}, err
	}
	if err := s.checkGoalAccess(actor, rv); err != nil {
		return GoalResponse{}, err
	}

	g := &Goal{
		TenantID:    rv.TenantID,
		ReviewID:    rv.ID,
		EmployeeID:  rv.EmployeeID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      GoalNotStarted,
	}
	if req.TargetDate != "" {
		t, err := time.Parse(dateLayout, req.TargetDate)
		if err != nil {
			return GoalResponse{}, performanceerrors.ErrInvalidDate
		}
		g.TargetDate = &t
	}
	if req.Progress != nil {
		if !validProgress(*req.Progress) {
			return GoalResponse{}, performanceerrors.ErrInvalidProgress
		}
		g.Progress = *req.Progress
		g.Status = statusForProgress(g.Progress)
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		s.logger.Error("create goal failed", zap.Error(err))
		return GoalResponse{}, err
	}

	s.logger.Info("create goal success", zap.String("goal_id", g.ID.String()), zap.String("review_id", reviewID))
	return mapGoalToResponse(*g), nil
}

func (s *service) ListGoals(ctx context.Context, actor domain.Actor, reviewID string) ([]GoalResponse, error) {
	rv, err := s.findReview(ctx, actor.TenantID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReview(actor, rv, policy.ActRead); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindGoalsByReview(ctx, actor.TenantID, reviewID)
	if err != nil {
		s.logger.Error("list goals failed", zap.Error(err))
		return nil, err
	}

	out := make([]GoalResponse, len(rows))
	for i, g := range rows {
		out[i] = mapGoalToResponse(g)
	}
	return out, nil
}

func (s *service) UpdateGoal(ctx context.Context, actor domain.Actor, id string, req UpdateGoalRequest) (GoalResponse, error) {
	g, _, err := s.findGoalForOwner(ctx, actor, id)
	if err != nil {
		return GoalResponse{}, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		g.Title = strings.TrimSpace(*req.Title)
		updates["title"] = g.Title
	}
	if req.Description != nil {
		g.Description = req.Description
		updates["description"] = *req.Description
	}
	if req.TargetDate != nil {
		t, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			return GoalResponse{}, performanceerrors.ErrInvalidDate
		}
		g.TargetDate = &t
		updates["target_date"] = t
	}
	if req.Progress != nil {
		if !validProgress(*req.Progress) {
			return GoalResponse{}, performanceerrors.ErrInvalidProgress
		}
		g.Progress = *req.Progress
		updates["progress"] = g.Progress
		if req.Status == nil {
			g.Status = statusForProgress(g.Progress)
			updates["status"] = g.Status
		}
	}
	if req.Status != nil {
		switch *req.Status {
		case GoalNotStarted, GoalInProgress, GoalCompleted:
		default:
			return GoalResponse{}, performanceerrors.ErrInvalidStatus
		}
		g.Status = *req.Status
		updates["status"] = g.Status
	}
	if len(updates) == 0 {
		return mapGoalToResponse(*g), nil
	}

	if err := s.repo.UpdateGoal(ctx, actor.TenantID, id, updates); err != nil {
		s.logger.Error("update goal failed", zap.Error(err))
		return GoalResponse{}, err
	}

	s.logger.Info("update goal success", zap.String("goal_id", id))
	return mapGoalToResponse(*g), nil
}

func (s *service) DeleteGoal(ctx context.Context, actor domain.Actor, id string) error {
	if _, _, err := s.findGoalForOwner(ctx, actor, id); err != nil {
		return err
	}

	n, err := s.repo.DeleteGoal(ctx, actor.TenantID, id)
	if err != nil {
		s.logger.Error("delete goal failed", zap.Error(err))
		return err
	}
	if n == 0 {
		return performanceerrors.ErrGoalNotFound
	}

	s.logger.Info("delete goal success", zap.String("goal_id", id))
	return nil
}

func (s *service) findCycle(ctx context.Context, tenantID, id string) (*ReviewCycle, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, performanceerrors.ErrCycleNotFound
	}
	c, err := s.repo.FindCycleByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepositoryError(err, performanceerrors.ErrCycleNotFound)
	}
	return c, nil
}

func (s *service) findReview(ctx context.Context, tenantID, id string) (*Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, performanceerrors.ErrReviewNotFound
	}
	rv, err := s.repo.FindReviewByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepositoryError(err, performanceerrors.ErrReviewNotFound)
	}
	return rv, nil
}

func (s *service) findGoalForOwner(ctx context.Context, actor domain.Actor, id string) (*Goal, *Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, performanceerrors.ErrGoalNotFound
	}
	g, err := s.repo.FindGoalByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, nil, mapRepositoryError(err, performanceerrors.ErrGoalNotFound)
	}

	rv, err := s.findReview(ctx, actor.TenantID, g.ReviewID.String())
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkGoalAccess(actor, rv); err != nil {
		return nil, nil, err
	}
	return g, rv, nil
}

func (s *service) checkGoalAccess(actor domain.Actor, rv *Review) error {
	allowed, err := s.policy.Allow(policy.SubjectOf(actor), policy.Resource{
		Kind:    policy.KindGoal,
		OwnerID: rv.EmployeeID.String(),
	}, policy.ActManage)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.Warn("goal access forbidden", zap.String("review_id", rv.ID.String()))
		return performanceerrors.ErrGoalForbidden
	}
	if rv.Status == ReviewCompleted {
		s.logger.Warn("goal change on completed review", zap.String("review_id", rv.ID.String()))
		return performanceerrors.ErrReviewCompleted
	}
	return nil
}

func (s *service) authorizeReview(actor domain.Actor, rv *Review, act string) error {
	allowed, err := s.policy.Allow(policy.SubjectOf(actor), policy.Resource{
		Kind:       policy.KindReview,
		OwnerID:    rv.EmployeeID.String(),
		ReviewerID: rv.ReviewerID.String(),
	}, act)
	if err != nil {
		return err
	}
	if !allowed {
		return performanceerrors.ErrReviewForbidden
	}
	return nil
}

func (s *service) listReviews(ctx context.Context, tenantID string, filter ReviewFilter) ([]ReviewResponse, error) {
	rows, err := s.repo.FindReviews(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("list reviews failed", zap.Error(err))
		return nil, err
	}

	out := make([]ReviewResponse, len(rows))
	for i, rv := range rows {
		out[i] = mapReviewToResponse(rv)
	}
	return out, nil
}

func parseRange(startText, endText string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startText)
	if err != nil {
		return time.Time{}, time.Time{}, performanceerrors.ErrInvalidDate
	}
	end, err := time.Parse(dateLayout, endText)
	if err != nil {
		return time.Time{}, time.Time{}, performanceerrors.ErrInvalidDate
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, performanceerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func validRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

func validProgress(p int) bool {
	return p >= 0 && p <= 100
}

func statusForProgress(p int) string {
	switch {
	case p >= 100:
		return GoalCompleted
	case p > 0:
		return GoalInProgress
	}
	return GoalNotStarted
}

func displayName(e *ReviewEmployee, fallback string) string {
	if name := e.FullName(); name != "" {
		return name
	}
	return fallback
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func mapCycleToResponse(c ReviewCycle, counts []StatusCount) CycleResponse {
	resp := CycleResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		StartDate:   c.StartDate.Format(dateLayout),
		EndDate:     c.EndDate.Format(dateLayout),
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
	if counts != nil {
		resp.ReviewCounts = map[string]int64{
			ReviewPending:    0,
			ReviewSelfReview: 0,
			ReviewCompleted:  0,
		}
		for _, sc := range counts {
			resp.ReviewCounts[sc.Status] = sc.Count
		}
	}
	return resp
}

func mapReviewToResponse(rv Review) ReviewResponse {
	resp := ReviewResponse{
		ID:                 rv.ID.String(),
		CycleID:            rv.CycleID.String(),
		EmployeeID:         rv.EmployeeID.String(),
		EmployeeName:       rv.Employee.FullName(),
		ReviewerID:         rv.ReviewerID.String(),
		ReviewerName:       rv.Reviewer.FullName(),
		Status:             rv.Status,
		SelfRating:         rv.SelfRating,
		SelfComments:       rv.SelfComments,
		SelfSubmittedAt:    rv.SelfSubmittedAt,
		ManagerRating:      rv.ManagerRating,
		ManagerComments:    rv.ManagerComments,
		OverallRating:      rv.OverallRating,
		ManagerSubmittedAt: rv.ManagerSubmittedAt,
	}
	if rv.Cycle != nil {
		resp.CycleName = rv.Cycle.Name
	}
	return resp
}

func mapGoalToResponse(g Goal) GoalResponse {
	return GoalResponse{
		ID:          g.ID.String(),
		ReviewID:    g.ReviewID.String(),
		EmployeeID:  g.EmployeeID.String(),
		Title:       g.Title,
		Description: g.Description,
		TargetDate:  formatDate(g.TargetDate),
		Progress:    g.Progress,
		Status:      g.Status,
		UpdatedAt:   g.UpdatedAt,
	}
}
