package user_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/middleware"
	"github.com/heyyrintu/hrms-sub001/internal/user"
	usererrors "github.com/heyyrintu/hrms-sub001/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeUserService struct {
	GetAllFn  func(ctx context.Context, tenantID, role string) ([]user.UserResponse, error)
	GetByIDFn func(ctx context.Context, tenantID, id string) (user.UserResponse, error)
}

func (f *fakeUserService) GetAll(ctx context.Context, tid, role string) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx, tid, role)
}

func (f *fakeUserService) GetByID(ctx context.Context, tid, id string) (user.UserResponse, error) {
	return f.GetByIDFn(ctx, tid, id)
}

func setupHandler(svc user.Service) *user.Handler {
	return user.NewHandler(svc, zap.NewNop())
}

func TestUserHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		tenantID := uuid.NewString()
		svc := &fakeUserService{
			GetAllFn: func(ctx context.Context, tid, role string) ([]user.UserResponse, error) {
				assert.Equal(t, tenantID, tid)
				assert.Equal(t, "MANAGER", role)
				return []user.UserResponse{{ID: uuid.NewString(), Email: "user@mail.com"}}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users?role=MANAGER", nil)
		c.Set(middleware.CtxTenantID, tenantID)

		setupHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user@mail.com")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeUserService{
			GetAllFn: func(ctx context.Context, tid, role string) ([]user.UserResponse, error) {
				return nil, errors.New("service error")
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users", nil)

		setupHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	})
}

func TestUserHandler_GetMe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("uses actor user id", func(t *testing.T) {
		userID := uuid.NewString()
		svc := &fakeUserService{
			GetByIDFn: func(ctx context.Context, tid, id string) (user.UserResponse, error) {
				assert.Equal(t, userID, id)
				return user.UserResponse{ID: id, Email: "me@mail.com"}, nil
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users/me", nil)
		c.Set(middleware.CtxUserID, userID)

		setupHandler(svc).GetMe(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "me@mail.com")
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeUserService{
			GetByIDFn: func(ctx context.Context, tid, id string) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrUserNotFound
			},
		}

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users/me", nil)

		setupHandler(svc).GetMe(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}
