package app

import (
	"net/http"

	"github.com/heyyrintu/hrms-sub001/internal/compoff"
	"github.com/heyyrintu/hrms-sub001/internal/config"
	"github.com/heyyrintu/hrms-sub001/internal/document"
	"github.com/heyyrintu/hrms-sub001/internal/employee"
	"github.com/heyyrintu/hrms-sub001/internal/holiday"
	"github.com/heyyrintu/hrms-sub001/internal/leave"
	"github.com/heyyrintu/hrms-sub001/internal/messaging/kafka"
	"github.com/heyyrintu/hrms-sub001/internal/middleware"
	"github.com/heyyrintu/hrms-sub001/internal/notification"
	"github.com/heyyrintu/hrms-sub001/internal/onboarding"
	"github.com/heyyrintu/hrms-sub001/internal/performance"
	"github.com/heyyrintu/hrms-sub001/internal/policy"
	"github.com/heyyrintu/hrms-sub001/internal/selfservice"
	"github.com/heyyrintu/hrms-sub001/internal/storage"
	"github.com/heyyrintu/hrms-sub001/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(a *App, cfg config.Config, router *gin.Engine) error {
	logger := zap.L()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(a.GormDB)
	userRepo := user.NewRepository(a.GormDB)
	leaveRepo := leave.NewRepository(a.GormDB)
	holidayRepo := holiday.NewRepository(a.GormDB)
	notificationRepo := notification.NewRepository(a.GormDB)
	compOffRepo := compoff.NewRepository(a.GormDB)
	onboardingRepo := onboarding.NewRepository(a.GormDB)
	performanceRepo := performance.NewRepository(a.GormDB)
	selfServiceRepo := selfservice.NewRepository(a.GormDB)
	documentRepo := document.NewRepository(a.GormDB)
	outboxRepo := kafka.NewOutboxRepository(a.DB)

	// --- Policy & notification fan-out ---
	evaluator, err := policy.NewEvaluator(logger)
	if err != nil {
		return err
	}

	notificationService := notification.NewService(notificationRepo, userRepo, logger)

	var sink notification.Sink = notificationService
	if cfg.Notification.Mode == config.NotificationModeOutbox {
		sink = notification.NewOutboxSink(outboxRepo)
	}
	dispatcher := notification.NewAsyncDispatcher(sink, cfg.Notification.Workers, cfg.Notification.QueueSize, logger)
	a.onClose(dispatcher.Close)

	store, err := storage.NewLocalStorage(cfg.Storage.Dir, cfg.Storage.MaxBytes, logger)
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, logger)
	userService := user.NewService(userRepo, logger)
	leaveService := leave.NewService(leaveRepo, logger)
	holidayService := holiday.NewService(holidayRepo, a.Redis, logger)
	compOffService := compoff.NewService(a.DB, compOffRepo, leaveRepo, employeeRepo, holidayService, evaluator, dispatcher, logger)
	onboardingService := onboarding.NewService(a.DB, onboardingRepo, employeeRepo, userRepo, evaluator, dispatcher, logger)
	performanceService := performance.NewService(a.DB, performanceRepo, employeeRepo, evaluator, dispatcher, logger)
	selfServiceService := selfservice.NewService(a.DB, selfServiceRepo, employeeRepo, evaluator, dispatcher, logger)
	documentService := document.NewService(documentRepo, store, employeeRepo, evaluator, logger)

	// --- Routes Registration ---
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.AuthMiddleware(cfg.Auth.JWTSecret),
		middleware.ContextLogger(logger),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		middleware.Idempotency(a.Redis, logger),
	)
	{
		employee.RegisterRoutes(api, employee.NewHandler(employeeService, logger))
		user.RegisterRoutes(api, user.NewHandler(userService, logger))
		leave.RegisterRoutes(api, leave.NewHandler(leaveService, logger))
		holiday.RegisterRoutes(api, holiday.NewHandler(holidayService, logger))
		notification.RegisterRoutes(api, notification.NewHandler(notificationService, logger))
		compoff.RegisterRoutes(api, compoff.NewHandler(compOffService, logger))
		onboarding.RegisterRoutes(api, onboarding.NewHandler(onboardingService, logger))
		performance.RegisterRoutes(api, performance.NewHandler(performanceService, logger))
		selfservice.RegisterRoutes(api, selfservice.NewHandler(selfServiceService, logger))
		document.RegisterRoutes(api, document.NewHandler(documentService, logger))
	}

	return nil
}
