package compoff

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	approvers := middleware.RoleMiddleware(domain.RoleManager, domain.RoleHRAdmin, domain.RoleSuperAdmin)
	admins := middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin)

	compOffs := r.Group("/comp-offs")
	{
		compOffs.POST("", handler.Create)
		compOffs.GET("/me", handler.ListMine)
		compOffs.GET("", admins, handler.ListAll)
		compOffs.GET("/pending-approvals", approvers, handler.PendingApprovals)
		compOffs.GET("/:id", handler.GetByID)
		compOffs.POST("/:id/approve", approvers, handler.Approve)
		compOffs.POST("/:id/reject", approvers, handler.Reject)
	}
}
