package app

import (
	"database/sql"
	"fmt"

	"github.com/heyyrintu/hrms-sub001/internal/config"
	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the long-lived resources behind the HTTP server.
type App struct {
	DB     *sql.DB
	GormDB *gorm.DB
	Redis  *redis.Client

	closers []func()
}

// Close releases resources in reverse acquisition order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *App) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

func BuildApp(cfg config.Config, router *gin.Engine) (*App, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.Connection(), cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("app: unwrap sql.DB: %w", err)
	}
	a := &App{DB: sqlDB, GormDB: gormDB}
	a.onClose(func() { _ = sqlDB.Close() })
	logger.Info("database connection established")

	// Redis is optional; without it holiday lookups hit the database and
	// idempotency keys are ignored.
	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Redis = rdb
		a.onClose(func() { _ = rdb.Close() })
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, cache and idempotency disabled")
	}

	if err := registerModules(a, cfg, router); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
