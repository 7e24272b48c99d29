package onboarding

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	admins := middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin)

	onboarding := r.Group("/onboarding")

	templates := onboarding.Group("/templates", admins)
	{
		templates.POST("", handler.CreateTemplate)
		templates.GET("", handler.ListTemplates)
		templates.GET("/:id", handler.GetTemplate)
		templates.PUT("/:id", handler.UpdateTemplate)
		templates.DELETE("/:id", handler.DeleteTemplate)
	}

	processes := onboarding.Group("/processes")
	{
		processes.POST("", admins, handler.CreateProcess)
		processes.GET("", admins, handler.ListProcesses)
		processes.GET("/:id", handler.GetProcess)
		processes.POST("/:id/cancel", admins, handler.CancelProcess)
		processes.DELETE("/:id", admins, handler.DeleteProcess)
	}

	tasks := onboarding.Group("/tasks")
	{
		tasks.GET("/me", handler.ListMyTasks)
		tasks.PATCH("/:id", handler.UpdateTask)
	}
}
