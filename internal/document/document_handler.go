package document

import (
	"net/http"

	documenterrors "github.com/heyyrintu/hrms-sub001/internal/document/errors"
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
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	var req UploadDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("http upload document validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", apperror.MapValidationError(err).Error())
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.writeServiceError(c, documenterrors.ErrFileRequired)
		return
	}
	f, err := header.Open()
	if err != nil {
		h.logger.Error("open multipart file failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	resp, err := h.service.Upload(c.Request.Context(), middleware.CurrentActor(c), req, Upload{
		Reader:   f,
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), middleware.CurrentActor(c), c.Query("employeeId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	dl, err := h.service.Download(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if dl.MimeType != "" {
		c.Header("Content-Type", dl.MimeType)
	}
	c.FileAttachment(dl.Path, dl.FileName)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentActor(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
