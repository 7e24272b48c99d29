package onboarding_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"
	"github.com/heyyrintu/hrms-sub001/internal/onboarding"
	onboardingerrors "github.com/heyyrintu/hrms-sub001/internal/onboarding/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOnboardingService struct {
	onboarding.Service
	updateTaskFn     func(ctx context.Context, actor domain.Actor, id string, req onboarding.UpdateTaskRequest) (onboarding.TaskResponse, error)
	deleteTemplateFn func(ctx context.Context, tenantID, id string) error
}

func (f *fakeOnboardingService) UpdateTask(ctx context.Context, actor domain.Actor, id string, req onboarding.UpdateTaskRequest) (onboarding.TaskResponse, error) {
	return f.updateTaskFn(ctx, actor, id, req)
}

func (f *fakeOnboardingService) DeleteTemplate(ctx context.Context, tenantID, id string) error {
	return f.deleteTemplateFn(ctx, tenantID, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestOnboardingHandler_UpdateTask(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeOnboardingService{
			updateTaskFn: func(ctx context.Context, actor domain.Actor, id string, req onboarding.UpdateTaskRequest) (onboarding.TaskResponse, error) {
				assert.Equal(t, "t1", id)
				assert.Equal(t, domain.RoleEmployee, actor.Role)
				assert.Equal(t, onboarding.TaskCompleted, *req.Status)
				return onboarding.TaskResponse{ID: id, Status: *req.Status}, nil
			},
		}
		c, w := newTestContext(http.MethodPatch, "/onboarding/tasks/t1", `{"status":"COMPLETED"}`)
		c.Params = gin.Params{{Key: "id", Value: "t1"}}
		c.Set(middleware.CtxRole, domain.RoleEmployee)

		onboarding.NewHandler(svc, zap.NewNop()).UpdateTask(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"COMPLETED"`)
	})

	t.Run("unknown status", func(t *testing.T) {
		c, w := newTestContext(http.MethodPatch, "/onboarding/tasks/t1", `{"status":"DONE"}`)

		onboarding.NewHandler(&fakeOnboardingService{}, zap.NewNop()).UpdateTask(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := &fakeOnboardingService{
			updateTaskFn: func(ctx context.Context, actor domain.Actor, id string, req onboarding.UpdateTaskRequest) (onboarding.TaskResponse, error) {
				return onboarding.TaskResponse{}, onboardingerrors.ErrTaskForbidden
			},
		}
		c, w := newTestContext(http.MethodPatch, "/onboarding/tasks/t1", `{"notes":"done"}`)

		onboarding.NewHandler(svc, zap.NewNop()).UpdateTask(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestOnboardingHandler_DeleteTemplate(t *testing.T) {
	svc := &fakeOnboardingService{
		deleteTemplateFn: func(ctx context.Context, tenantID, id string) error {
			return onboardingerrors.ErrTemplateInUse
		},
	}
	c, w := newTestContext(http.MethodDelete, "/onboarding/templates/x", "")

	onboarding.NewHandler(svc, zap.NewNop()).DeleteTemplate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "deactivate it instead")
}
