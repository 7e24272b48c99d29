package leave

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/leave-types", handler.ListLeaveTypes)

	balances := r.Group("/leave-balances")
	{
		balances.GET("/me", handler.GetMyBalances)
		balances.GET("/employees/:employeeId",
			middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin),
			handler.GetEmployeeBalances,
		)
	}
}
