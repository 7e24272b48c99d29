package selfservice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"
	"github.com/heyyrintu/hrms-sub001/internal/selfservice"
	selfserviceerrors "github.com/heyyrintu/hrms-sub001/internal/selfservice/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSelfService struct {
	selfservice.Service
	createFn func(ctx context.Context, actor domain.Actor, req selfservice.CreateChangeRequestRequest) (selfservice.ChangeRequestResponse, error)
	reviewFn func(ctx context.Context, actor domain.Actor, id string, req selfservice.ReviewChangeRequestRequest) (selfservice.ChangeRequestResponse, error)
}

func (f *fakeSelfService) Create(ctx context.Context, actor domain.Actor, req selfservice.CreateChangeRequestRequest) (selfservice.ChangeRequestResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakeSelfService) Review(ctx context.Context, actor domain.Actor, id string, req selfservice.ReviewChangeRequestRequest) (selfservice.ChangeRequestResponse, error) {
	return f.reviewFn(ctx, actor, id, req)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestSelfServiceHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeSelfService{
			createFn: func(ctx context.Context, actor domain.Actor, req selfservice.CreateChangeRequestRequest) (selfservice.ChangeRequestResponse, error) {
				assert.Equal(t, "e1", actor.EmployeeID)
				assert.Equal(t, "phone", req.FieldName)
				return selfservice.ChangeRequestResponse{ID: "cr1", FieldName: req.FieldName, Status: selfservice.StatusPending}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/self-service/change-requests", `{"fieldName":"phone","newValue":"+62 811"}`)
		c.Set(middleware.CtxEmployeeID, "e1")

		selfservice.NewHandler(svc, zap.NewNop()).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"PENDING"`)
	})

	t.Run("missing value", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/self-service/change-requests", `{"fieldName":"phone"}`)

		selfservice.NewHandler(&fakeSelfService{}, zap.NewNop()).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("field outside allow-list", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/self-service/change-requests", `{"fieldName":"salary","newValue":"1"}`)

		selfservice.NewHandler(&fakeSelfService{}, zap.NewNop()).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Field Name is invalid")
	})

	t.Run("pending conflict", func(t *testing.T) {
		svc := &fakeSelfService{
			createFn: func(ctx context.Context, actor domain.Actor, req selfservice.CreateChangeRequestRequest) (selfservice.ChangeRequestResponse, error) {
				return selfservice.ChangeRequestResponse{}, selfserviceerrors.ErrPendingExists
			},
		}
		c, w := newTestContext(http.MethodPost, "/self-service/change-requests", `{"fieldName":"phone","newValue":"1"}`)

		selfservice.NewHandler(svc, zap.NewNop()).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSelfServiceHandler_Review(t *testing.T) {
	t.Run("unknown status rejected before service", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/self-service/change-requests/cr1/review", `{"status":"MAYBE"}`)
		c.Params = gin.Params{{Key: "id", Value: "cr1"}}

		selfservice.NewHandler(&fakeSelfService{}, zap.NewNop()).Review(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already reviewed", func(t *testing.T) {
		svc := &fakeSelfService{
			reviewFn: func(ctx context.Context, actor domain.Actor, id string, req selfservice.ReviewChangeRequestRequest) (selfservice.ChangeRequestResponse, error) {
				assert.Equal(t, "cr1", id)
				return selfservice.ChangeRequestResponse{}, selfserviceerrors.ErrAlreadyReviewed
			},
		}
		c, w := newTestContext(http.MethodPost, "/self-service/change-requests/cr1/review", `{"status":"APPROVED"}`)
		c.Params = gin.Params{{Key: "id", Value: "cr1"}}

		selfservice.NewHandler(svc, zap.NewNop()).Review(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
