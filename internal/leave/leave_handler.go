package leave

import (
	"net/http"
	"strconv"

	leaveerrors "github.com/heyyrintu/hrms-sub001/internal/leave/errors"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"
	"github.com/heyyrintu/hrms-sub001/internal/shared/apperror"
	"github.com/heyyrintu/hrms-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseYear(c *gin.Context) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, leaveerrors.ErrInvalidYear
	}
	return year, nil
}

func (h *Handler) GetMyBalances(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	h.logger.Debug("http get my leave balances", zap.String("employee_id", actor.EmployeeID))

	year, err := parseYear(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetBalances(c.Request.Context(), actor.TenantID, actor.EmployeeID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetEmployeeBalances(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	year, err := parseYear(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetBalances(c.Request.Context(), actor.TenantID, c.Param("employeeId"), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListLeaveTypes(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	resp, err := h.service.ListLeaveTypes(c.Request.Context(), actor.TenantID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
