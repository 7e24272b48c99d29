package performance

import (
	"fmt"
	"net/http"

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
	l := zap.L().Named("performance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("performance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("performance validation failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return false
	}
	return true
}

func (h *Handler) CreateCycle(c *gin.Context) {
	var req CreateCycleRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.CreateCycle(c.Request.Context(), middleware.CurrentActor(c).TenantID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListCycles(c *gin.Context) {
	resp, err := h.service.ListCycles(c.Request.Context(), middleware.CurrentActor(c).TenantID, c.Query("status"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetCycle(c *gin.Context) {
	resp, err := h.service.GetCycle(c.Request.Context(), middleware.CurrentActor(c).TenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateCycle(c *gin.Context) {
	var req UpdateCycleRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.UpdateCycle(c.Request.Context(), middleware.CurrentActor(c).TenantID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteCycle(c *gin.Context) {
	if err := h.service.DeleteCycle(c.Request.Context(), middleware.CurrentActor(c).TenantID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) LaunchCycle(c *gin.Context) {
	resp, err := h.service.LaunchCycle(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CompleteCycle(c *gin.Context) {
	resp, err := h.service.CompleteCycle(c.Request.Context(), middleware.CurrentActor(c).TenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CycleReport(c *gin.Context) {
	data, filename, err := h.service.CycleReportPDF(c.Request.Context(), middleware.CurrentActor(c).TenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) ListCycleReviews(c *gin.Context) {
	resp, err := h.service.ListCycleReviews(c.Request.Context(), middleware.CurrentActor(c).TenantID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) ListMyReviews(c *gin.Context) {
	resp, err := h.service.ListMyReviews(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) TeamReviews(c *gin.Context) {
	resp, err := h.service.GetTeamReviews(c.Request.Context(), middleware.CurrentActor(c), c.Query("cycleId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetReview(c *gin.Context) {
	resp, err := h.service.GetReview(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SubmitSelfReview(c *gin.Context) {
	var req SelfReviewRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.SubmitSelfReview(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SubmitManagerReview(c *gin.Context) {
	var req ManagerReviewRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.SubmitManagerReview(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.CreateGoal(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListGoals(c *gin.Context) {
	resp, err := h.service.ListGoals(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	var req UpdateGoalRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.UpdateGoal(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	if err := h.service.DeleteGoal(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
