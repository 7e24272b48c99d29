package performance

import (
	"github.com/heyyrintu/hrms-sub001/internal/domain"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	admins := middleware.RoleMiddleware(domain.RoleHRAdmin, domain.RoleSuperAdmin)

	perf := r.Group("/performance")

	cycles := perf.Group("/cycles", admins)
	{
		cycles.POST("", handler.CreateCycle)
		cycles.GET("", handler.ListCycles)
		cycles.GET("/:id", handler.GetCycle)
		cycles.PUT("/:id", handler.UpdateCycle)
		cycles.DELETE("/:id", handler.DeleteCycle)
		cycles.POST("/:id/launch", handler.LaunchCycle)
		cycles.POST("/:id/complete", handler.CompleteCycle)
		cycles.GET("/:id/reviews", handler.ListCycleReviews)
		cycles.GET("/:id/report", handler.CycleReport)
	}

	reviews := perf.Group("/reviews")
	{
		reviews.GET("/me", handler.ListMyReviews)
		reviews.GET("/team", handler.TeamReviews)
		reviews.GET("/:id", handler.GetReview)
		reviews.POST("/:id/self", handler.SubmitSelfReview)
		reviews.POST("/:id/manager", handler.SubmitManagerReview)
		reviews.GET("/:id/goals", handler.ListGoals)
		reviews.POST("/:id/goals", handler.CreateGoal)
	}

	goals := perf.Group("/goals")
	{
		goals.PATCH("/:id", handler.UpdateGoal)
		goals.DELETE("/:id", handler.DeleteGoal)
	}
}
