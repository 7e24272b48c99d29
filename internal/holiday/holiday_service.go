package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	holidayerrors "github.com/heyyrintu/hrms-sub001/internal/holiday/errors"
	"github.com/heyyrintu/hrms-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dateLayout = "2006-01-02"
	cacheTTL   = 12 * time.Hour
)

// CacheKey holds the active holiday dates of one tenant-year.
func CacheKey(tenantID string, year int) string {
	return fmt.Sprintf("holidays:%s:%d", tenantID, year)
}

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, tenantID string, year int) ([]HolidayResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
	IsHoliday(ctx context.Context, tenantID string, date time.Time) (bool, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

// NewService accepts a nil rdb; lookups then always hit the database.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, tenantID string, req CreateHolidayRequest) (HolidayResponse, error) {
	s.logger.Debug("create holiday requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", tenantID),
		zap.String("date", req.Date),
	)

	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidTenantID
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		s.logger.Warn("create holiday invalid date", zap.String("date", req.Date))
		return HolidayResponse{}, holidayerrors.ErrInvalidDate
	}

	h := &Holiday{
		TenantID: tenantUUID,
		Name:     strings.TrimSpace(req.Name),
		Date:     date,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday failed", zap.Error(err))
		return HolidayResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, tenantID, date.Year())
	s.logger.Info("create holiday success", zap.String("holiday_id", h.ID.String()))
	return mapToResponse(*h), nil
}

func (s *service) List(ctx context.Context, tenantID string, year int) ([]HolidayResponse, error) {
	if year == 0 {
		year = s.now().UTC().Year()
	}
	if year < 2000 || year > 2100 {
		return nil, holidayerrors.ErrInvalidYear
	}

	rows, err := s.repo.FindByYear(ctx, tenantID, year)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Error(err))
		return nil, err
	}

	out := make([]HolidayResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, mapToResponse(h))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrHolidayNotFound
	}

	h, err := s.repo.Delete(ctx, tenantID, id)
	if err != nil {
		s.logger.Warn("delete holiday failed", zap.String("holiday_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidate(ctx, tenantID, h.Date.Year())
	s.logger.Info("delete holiday success", zap.String("holiday_id", id))
	return nil
}

// IsHoliday reports whether date (compared as a UTC calendar day) is an
// active holiday for the tenant.
func (s *service) IsHoliday(ctx context.Context, tenantID string, date time.Time) (bool, error) {
	date = date.UTC()
	dates, err := s.activeDates(ctx, tenantID, date.Year())
	if err != nil {
		return false, err
	}

	day := date.Format(dateLayout)
	for _, d := range dates {
		if d == day {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) activeDates(ctx context.Context, tenantID string, year int) ([]string, error) {
	cacheKey := CacheKey(tenantID, year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(cached), &dates); err == nil {
				return dates, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.ActiveDates(ctx, tenantID, year)
		if err != nil {
			return nil, err
		}

		dates := make([]string, 0, len(rows))
		for _, d := range rows {
			dates = append(dates, d.UTC().Format(dateLayout))
		}

		if s.rdb != nil {
			if data, err := json.Marshal(dates); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
					s.logger.Warn("holiday cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return dates, nil
	})
	if err != nil {
		s.logger.Error("load holiday dates failed", zap.String("tenant_id", tenantID), zap.Error(err))
		return nil, err
	}
	return v.([]string), nil
}

func (s *service) invalidate(ctx context.Context, tenantID string, year int) {
	if s.rdb == nil {
		return
	}
	cacheKey := CacheKey(tenantID, year)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("holiday cache invalidation failed", zap.String("key", cacheKey), zap.Error(err))
	}
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:       h.ID.String(),
		Name:     h.Name,
		Date:     h.Date.Format(dateLayout),
		IsActive: h.IsActive,
	}
}
