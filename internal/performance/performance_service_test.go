package performance_test

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/employee"
	"github.com/heyyrintu/hrms-sub001/internal/notification"
	notificationmock "github.com/heyyrintu/hrms-sub001/internal/notification/mock"
	"github.com/heyyrintu/hrms-sub001/internal/performance"
	performanceerrors "github.com/heyyrintu/hrms-sub001/internal/performance/errors"
	"github.com/heyyrintu/hrms-sub001/internal/policy"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type memoryRepository struct {
	cycles  map[string]*performance.ReviewCycle
	reviews map[string]*performance.Review
	goals   map[string]*performance.Goal
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		cycles:  map[string]*performance.ReviewCycle{},
		reviews: map[string]*performance.Review{},
		goals:   map[string]*performance.Goal{},
	}
}

func (m *memoryRepository) WithTx(tx *sql.Tx) performance.Repository { return m }

func (m *memoryRepository) CreateCycle(ctx context.Context, c *performance.ReviewCycle) error {
	c.ID = uuid.New()
	cp := *c
	m.cycles[c.ID.String()] = &cp
	return nil
}

func (m *memoryRepository) FindCycles(ctx context.Context, tenantID, status string) ([]performance.ReviewCycle, error) {
	var out []performance.ReviewCycle
	for _, c := range m.cycles {
		if status == "" || c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memoryRepository) FindCycleByID(ctx context.Context, tenantID, id string) (*performance.ReviewCycle, error) {
	c, ok := m.cycles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memoryRepository) UpdateDraftCycle(ctx context.Context, tenantID, id string, updates map[string]interface{}) (int64, error) {
	c, ok := m.cycles[id]
	if !ok || c.Status != performance.CycleDraft {
		return 0, nil
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	return 1, nil
}

func (m *memoryRepository) DeleteDraftCycle(ctx context.Context, tenantID, id string) (int64, error) {
	c, ok := m.cycles[id]
	if !ok || c.Status != performance.CycleDraft {
		return 0, nil
	}
	delete(m.cycles, id)
	return 1, nil
}

func (m *memoryRepository) TransitionCycle(ctx context.Context, tenantID, id, from, to string) (int64, error) {
	c, ok := m.cycles[id]
	if !ok || c.Status != from {
		return 0, nil
	}
	c.Status = to
	return 1, nil
}

func (m *memoryRepository) CountReviewsByStatus(ctx context.Context, tenantID, cycleID string) ([]performance.StatusCount, error) {
	counts := map[string]int64{}
	for _, rv := range m.reviews {
		if rv.CycleID.String() == cycleID {
			counts[rv.Status]++
		}
	}
	var out []performance.StatusCount
	for status, n := range counts {
		out = append(out, performance.StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (m *memoryRepository) CreateReviews(ctx context.Context, reviews []performance.Review) error {
	for i := range reviews {
		reviews[i].ID = uuid.New()
		cp := reviews[i]
		m.reviews[cp.ID.String()] = &cp
	}
	return nil
}

func (m *memoryRepository) FindReviewByID(ctx context.Context, tenantID, id string) (*performance.Review, error) {
	rv, ok := m.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rv
	return &cp, nil
}

func (m *memoryRepository) FindReviews(ctx context.Context, tenantID string, f performance.ReviewFilter) ([]performance.Review, error) {
	var out []performance.Review
	for _, rv := range m.reviews {
		if f.CycleID != "" && rv.CycleID.String() != f.CycleID {
			continue
		}
		if f.EmployeeID != "" && rv.EmployeeID.String() != f.EmployeeID {
			continue
		}
		if f.ReviewerID != "" && rv.ReviewerID.String() != f.ReviewerID {
			continue
		}
		out = append(out, *rv)
	}
	return out, nil
}

func (m *memoryRepository) TransitionReview(ctx context.Context, tenantID, id, from string, updates map[string]interface{}) (int64, error) {
	rv, ok := m.reviews[id]
	if !ok || rv.Status != from {
		return 0, nil
	}
	rv.Status = updates["status"].(string)
	return 1, nil
}

func (m *memoryRepository) CreateGoal(ctx context.Context, g *performance.Goal) error {
	g.ID = uuid.New()
	cp := *g
	m.goals[g.ID.String()] = &cp
	return nil
}

func (m *memoryRepository) FindGoalByID(ctx context.Context, tenantID, id string) (*performance.Goal, error) {
	g, ok := m.goals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memoryRepository) FindGoalsByReview(ctx context.Context, tenantID, reviewID string) ([]performance.Goal, error) {
	var out []performance.Goal
	for _, g := range m.goals {
		if g.ReviewID.String() == reviewID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *memoryRepository) UpdateGoal(ctx context.Context, tenantID, id string, updates map[string]interface{}) error {
	g := m.goals[id]
	if v, ok := updates["progress"]; ok {
		g.Progress = v.(int)
	}
	if v, ok := updates["status"]; ok {
		g.Status = v.(string)
	}
	return nil
}

func (m *memoryRepository) DeleteGoal(ctx context.Context, tenantID, id string) (int64, error) {
	if _, ok := m.goals[id]; !ok {
		return 0, nil
	}
	delete(m.goals, id)
	return 1, nil
}

type fakeEligible struct {
	rows []employee.Employee
}

func (f *fakeEligible) FindActiveWithManager(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	return f.rows, nil
}

type perfDeps struct {
	sqlMock    sqlmock.Sqlmock
	repo       *memoryRepository
	eligible   *fakeEligible
	dispatcher *notificationmock.MockDispatcher
	service    performance.Service

	tenantID string
	hr       domain.Actor
}

var fixedNow = time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)

func setupPerformanceTest(t *testing.T) *perfDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	evaluator, err := policy.NewEvaluator(zap.NewNop())
	require.NoError(t, err)

	tenantID := uuid.NewString()
	deps := &perfDeps{
		sqlMock:    sqlMock,
		repo:       newMemoryRepository(),
		eligible:   &fakeEligible{},
		dispatcher: notificationmock.NewMockDispatcher(gomock.NewController(t)),
		tenantID:   tenantID,
		hr:         domain.Actor{TenantID: tenantID, EmployeeID: uuid.NewString(), Role: domain.RoleHRAdmin},
	}
	deps.service = performance.NewService(db, deps.repo, deps.eligible, evaluator, deps.dispatcher, zap.NewNop())
	performance.SetClock(deps.service, func() time.Time { return fixedNow })
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func seedCycle(deps *perfDeps, status string) string {
	id := uuid.New()
	deps.repo.cycles[id.String()] = &performance.ReviewCycle{
		ID:        id,
		TenantID:  uuid.MustParse(deps.tenantID),
		Name:      "H1 2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
	return id.String()
}

func seedReview(deps *perfDeps, employeeID, reviewerID uuid.UUID, status string) string {
	id := uuid.New()
	deps.repo.reviews[id.String()] = &performance.Review{
		ID:         id,
		CycleID:    uuid.New(),
		EmployeeID: employeeID,
		ReviewerID: reviewerID,
		Status:     status,
		Employee:   &performance.ReviewEmployee{ID: employeeID, FirstName: "Alan", LastName: "Turing"},
	}
	return id.String()
}

func actorFor(deps *perfDeps, employeeID uuid.UUID, role string) domain.Actor {
	return domain.Actor{TenantID: deps.tenantID, EmployeeID: employeeID.String(), Role: role}
}

func TestPerformanceService_Cycles(t *testing.T) {
	ctx := context.Background()

	t.Run("end must be after start", func(t *testing.T) {
		deps := setupPerformanceTest(t)

		_, err := deps.service.CreateCycle(ctx, deps.tenantID, performance.CreateCycleRequest{
			Name: "Q3", StartDate: "2025-07-01", EndDate: "2025-07-01",
		})

		assert.ErrorIs(t, err, performanceerrors.ErrInvalidDateRange)
	})

	t.Run("create starts as draft", func(t *testing.T) {
		deps := setupPerformanceTest(t)

		resp, err := deps.service.CreateCycle(ctx, deps.tenantID, performance.CreateCycleRequest{
			Name: "Q3", StartDate: "2025-07-01", EndDate: "2025-09-30",
		})

		require.NoError(t, err)
		assert.Equal(t, performance.CycleDraft, resp.Status)
		assert.Equal(t, "2025-09-30", resp.EndDate)
	})

	t.Run("active cycle cannot be edited or deleted", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		id := seedCycle(deps, performance.CycleActive)
		name := "renamed"

		_, err := deps.service.UpdateCycle(ctx, deps.tenantID, id, performance.UpdateCycleRequest{Name: &name})
		assert.ErrorIs(t, err, performanceerrors.ErrCycleNotDraft)

		err = deps.service.DeleteCycle(ctx, deps.tenantID, id)
		assert.ErrorIs(t, err, performanceerrors.ErrCycleNotDraft)
	})

	t.Run("update rejects inverted range", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		id := seedCycle(deps, performance.CycleDraft)
		end := "2024-12-31"

		_, err := deps.service.UpdateCycle(ctx, deps.tenantID, id, performance.UpdateCycleRequest{EndDate: &end})

		assert.ErrorIs(t, err, performanceerrors.ErrInvalidDateRange)
	})

	t.Run("complete requires active", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		id := seedCycle(deps, performance.CycleDraft)

		_, err := deps.service.CompleteCycle(ctx, deps.tenantID, id)

		assert.ErrorIs(t, err, performanceerrors.ErrCycleNotActive)
	})
}

func TestPerformanceService_LaunchCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots eligible employees and notifies each", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		id := seedCycle(deps, performance.CycleDraft)
		m1, m2 := uuid.New(), uuid.New()
		e1, e2 := uuid.New(), uuid.New()
		deps.eligible.rows = []employee.Employee{
			{ID: e1, Status: employee.StatusActive, ManagerID: &m1},
			{ID: e2, Status: employee.StatusActive, ManagerID: &m2},
		}
		expectTx(t, deps.sqlMock, true)

		var notified []string
		deps.dispatcher.EXPECT().
			Dispatch(gomock.Any(), gomock.Any()).
			Do(func(ctx context.Context, req notification.Request) {
				assert.Equal(t, notification.TypeReviewCycleLaunched, req.Type)
				notified = append(notified, req.EmployeeID)
			}).
			Times(2)

		resp, err := deps.service.LaunchCycle(ctx, deps.hr, id)

		require.NoError(t, err)
		assert.Equal(t, performance.CycleActive, resp.Status)
		assert.Equal(t, int64(2), resp.ReviewCounts[performance.ReviewPending])
		assert.ElementsMatch(t, []string{e1.String(), e2.String()}, notified)

		reviewers := map[uuid.UUID]uuid.UUID{}
		for _, rv := range deps.repo.reviews {
			reviewers[rv.EmployeeID] = rv.ReviewerID
			assert.Equal(t, performance.ReviewPending, rv.Status)
		}
		assert.Equal(t, m1, reviewers[e1])
		assert.Equal(t, m2, reviewers[e2])
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no eligible employees writes nothing", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		id := seedCycle(deps, performance.CycleDraft)

		_, err := deps.service.LaunchCycle(ctx, deps.hr, id)

		assert.ErrorIs(t, err, performanceerrors.ErrNoEligibleEmployees)
		assert.Equal(t, performance.CycleDraft, deps.repo.cycles[id].Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already launched", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		id := seedCycle(deps, performance.CycleActive)

		_, err := deps.service.LaunchCycle(ctx, deps.hr, id)

		assert.ErrorIs(t, err, performanceerrors.ErrCycleNotDraft)
	})
}

func TestPerformanceService_ReviewTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("manager review before self review fails", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		emp, mgr := uuid.New(), uuid.New()
		id := seedReview(deps, emp, mgr, performance.ReviewPending)

		_, err := deps.service.SubmitManagerReview(ctx, actorFor(deps, mgr, domain.RoleManager), id,
			performance.ManagerReviewRequest{ManagerRating: 4, OverallRating: 4})

		assert.ErrorIs(t, err, performanceerrors.ErrReviewNotSelfReviewed)
	})

	t.Run("self then manager completes and notifies", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		emp, mgr := uuid.New(), uuid.New()
		id := seedReview(deps, emp, mgr, performance.ReviewPending)

		gomock.InOrder(
			deps.dispatcher.EXPECT().
				Dispatch(gomock.Any(), gomock.Any()).
				Do(func(ctx context.Context, req notification.Request) {
					assert.Equal(t, notification.TypeSelfReviewSubmitted, req.Type)
					assert.Equal(t, mgr.String(), req.EmployeeID)
					assert.Contains(t, req.Message, "Alan Turing")
				}),
			deps.dispatcher.EXPECT().
				Dispatch(gomock.Any(), gomock.Any()).
				Do(func(ctx context.Context, req notification.Request) {
					assert.Equal(t, notification.TypeReviewCompleted, req.Type)
					assert.Equal(t, emp.String(), req.EmployeeID)
					assert.Contains(t, req.Message, "3/5")
				}),
		)

		self, err := deps.service.SubmitSelfReview(ctx, actorFor(deps, emp, domain.RoleEmployee), id,
			performance.SelfReviewRequest{SelfRating: 4, SelfComments: " shipped "})
		require.NoError(t, err)
		assert.Equal(t, performance.ReviewSelfReview, self.Status)
		assert.Equal(t, "shipped", *self.SelfComments)
		assert.Equal(t, fixedNow, *self.SelfSubmittedAt)

		done, err := deps.service.SubmitManagerReview(ctx, actorFor(deps, mgr, domain.RoleManager), id,
			performance.ManagerReviewRequest{ManagerRating: 3, OverallRating: 3})
		require.NoError(t, err)
		assert.Equal(t, performance.ReviewCompleted, done.Status)
		assert.Equal(t, 3, *done.OverallRating)
	})

	t.Run("self review twice fails", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		emp := uuid.New()
		id := seedReview(deps, emp, uuid.New(), performance.ReviewSelfReview)

		_, err := deps.service.SubmitSelfReview(ctx, actorFor(deps, emp, domain.RoleEmployee), id,
			performance.SelfReviewRequest{SelfRating: 5})

		assert.ErrorIs(t, err, performanceerrors.ErrReviewNotPending)
	})

	t.Run("someone else's self review is forbidden", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		id := seedReview(deps, uuid.New(), uuid.New(), performance.ReviewPending)

		_, err := deps.service.SubmitSelfReview(ctx, actorFor(deps, uuid.New(), domain.RoleEmployee), id,
			performance.SelfReviewRequest{SelfRating: 5})

		assert.ErrorIs(t, err, performanceerrors.ErrReviewForbidden)
	})

	t.Run("other manager is forbidden, hr may submit", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		id := seedReview(deps, uuid.New(), uuid.New(), performance.ReviewSelfReview)
		req := performance.ManagerReviewRequest{ManagerRating: 5, OverallRating: 5}

		_, err := deps.service.SubmitManagerReview(ctx, actorFor(deps, uuid.New(), domain.RoleManager), id, req)
		assert.ErrorIs(t, err, performanceerrors.ErrReviewForbidden)

		deps.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(1)
		_, err = deps.service.SubmitManagerReview(ctx, deps.hr, id, req)
		assert.NoError(t, err)
	})

	t.Run("rating out of range", func(t *testing.T) {
		deps := setupPerformanceTest(t)

		_, err := deps.service.SubmitSelfReview(ctx, deps.hr, uuid.NewString(), performance.SelfReviewRequest{SelfRating: 6})

		assert.ErrorIs(t, err, performanceerrors.ErrInvalidRating)
	})
}

func TestPerformanceService_Visibility(t *testing.T) {
	ctx := context.Background()

	t.Run("team reviews", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		mgr := uuid.New()
		seedReview(deps, uuid.New(), mgr, performance.ReviewPending)
		seedReview(deps, uuid.New(), uuid.New(), performance.ReviewPending)

		_, err := deps.service.GetTeamReviews(ctx, actorFor(deps, uuid.New(), domain.RoleEmployee), "")
		assert.ErrorIs(t, err, performanceerrors.ErrTeamReviewsForbidden)

		_, err = deps.service.GetTeamReviews(ctx, domain.Actor{TenantID: deps.tenantID, Role: domain.RoleManager}, "")
		assert.ErrorIs(t, err, performanceerrors.ErrEmployeeContextRequired)

		mine, err := deps.service.GetTeamReviews(ctx, actorFor(deps, mgr, domain.RoleManager), "")
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		all, err := deps.service.GetTeamReviews(ctx, deps.hr, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("get review", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		emp, mgr := uuid.New(), uuid.New()
		id := seedReview(deps, emp, mgr, performance.ReviewPending)

		for _, a := range []domain.Actor{actorFor(deps, emp, domain.RoleEmployee), actorFor(deps, mgr, domain.RoleManager), deps.hr} {
			_, err := deps.service.GetReview(ctx, a, id)
			assert.NoError(t, err)
		}

		_, err := deps.service.GetReview(ctx, actorFor(deps, uuid.New(), domain.RoleManager), id)
		assert.ErrorIs(t, err, performanceerrors.ErrReviewForbidden)

		_, err = deps.service.GetReview(ctx, deps.hr, uuid.NewString())
		assert.ErrorIs(t, err, performanceerrors.ErrReviewNotFound)
	})
}

func TestPerformanceService_Goals(t *testing.T) {
	ctx := context.Background()

	t.Run("owner manages goals until review completes", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		emp := uuid.New()
		owner := actorFor(deps, emp, domain.RoleEmployee)
		reviewID := seedReview(deps, emp, uuid.New(), performance.ReviewSelfReview)

		goal, err := deps.service.CreateGoal(ctx, owner, reviewID, performance.CreateGoalRequest{Title: "Ship v2"})
		require.NoError(t, err)
		assert.Equal(t, performance.GoalNotStarted, goal.Status)

		progress := 100
		updated, err := deps.service.UpdateGoal(ctx, owner, goal.ID, performance.UpdateGoalRequest{Progress: &progress})
		require.NoError(t, err)
		assert.Equal(t, performance.GoalCompleted, updated.Status)

		deps.repo.reviews[reviewID].Status = performance.ReviewCompleted
		err = deps.service.DeleteGoal(ctx, owner, goal.ID)
		assert.ErrorIs(t, err, performanceerrors.ErrReviewCompleted)
	})

	t.Run("reviewer cannot manage employee goals", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		mgr := uuid.New()
		reviewID := seedReview(deps, uuid.New(), mgr, performance.ReviewPending)

		_, err := deps.service.CreateGoal(ctx, actorFor(deps, mgr, domain.RoleManager), reviewID, performance.CreateGoalRequest{Title: "x"})

		assert.ErrorIs(t, err, performanceerrors.ErrGoalForbidden)
	})

	t.Run("reviewer can list goals", func(t *testing.T) {
		deps := setupPerformanceTest(t)
		emp, mgr := uuid.New(), uuid.New()
		reviewID := seedReview(deps, emp, mgr, performance.ReviewPending)
		_, err := deps.service.CreateGoal(ctx, actorFor(deps, emp, domain.RoleEmployee), reviewID, performance.CreateGoalRequest{Title: "x"})
		require.NoError(t, err)

		goals, err := deps.service.ListGoals(ctx, actorFor(deps, mgr, domain.RoleManager), reviewID)

		require.NoError(t, err)
		assert.Len(t, goals, 1)
	})
}

func TestRenderCycleReport(t *testing.T) {
	rating := 4
	cycle := performance.ReviewCycle{
		ID:        uuid.New(),
		Name:      "H1 2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Status:    performance.CycleActive,
	}
	reviews := []performance.Review{
		{Status: performance.ReviewCompleted, OverallRating: &rating,
			Employee: &performance.ReviewEmployee{FirstName: "Ada", LastName: "Lovelace"}},
		{Status: performance.ReviewPending},
	}

	data, err := performance.RenderCycleReport(cycle, reviews)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
