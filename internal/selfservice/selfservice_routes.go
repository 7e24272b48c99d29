package selfservice

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	admins := middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin)

	requests := r.Group("/self-service/change-requests")
	{
		requests.POST("", handler.Create)
		requests.GET("/me", handler.ListMine)
		requests.GET("", admins, handler.ListAll)
		requests.GET("/:id", handler.GetByID)
		requests.POST("/:id/review", admins, handler.Review)
	}
}
