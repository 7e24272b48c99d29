package document

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	documents := r.Group("/documents")
	{
		documents.POST("", handler.Upload)
		documents.GET("", handler.List)
		documents.GET("/:id", handler.GetByID)
		documents.GET("/:id/download", handler.Download)
		documents.DELETE("/:id", middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin), handler.Delete)
	}
}
