package holiday

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	holidays := r.Group("/holidays")
	admin := middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin)
	{
		holidays.GET("", handler.List)
		holidays.POST("", admin, handler.Create)
		holidays.DELETE("/:id", admin, handler.Delete)
	}
}
