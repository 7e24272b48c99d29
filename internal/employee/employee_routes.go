package employee

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("/me", handler.GetMe)
		employees.GET("/me/team", middleware.RoleMiddleware(domain.RoleManager, domain.RoleHRAdmin, domain.RoleSuperAdmin), handler.GetTeam)
		employees.GET("", middleware.RoleMiddleware(domain.RoleManager, domain.RoleHRAdmin, domain.RoleSuperAdmin), handler.GetAll)
		employees.GET("/:id", middleware.RoleMiddleware(domain.RoleManager, domain.RoleHRAdmin, domain.RoleSuperAdmin), handler.GetByID)
	}
}
