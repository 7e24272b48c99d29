package user

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	{
		users.GET("/me", handler.GetMe)
		users.GET("", middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin), handler.GetAll)
		users.GET("/:id", middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin), handler.GetByID)
	}
}
