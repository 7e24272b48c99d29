package holiday_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/holiday"
	holidayerrors "github.com/heyyrintu/hrms-sub001/internal/holiday/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeHolidayRepository struct {
	createFn      func(ctx context.Context, h *holiday.Holiday) error
	findByYearFn  func(ctx context.Context, tenantID string, year int) ([]holiday.Holiday, error)
	activeDatesFn func(ctx context.Context, tenantID string, year int) ([]time.Time, error)
	deleteFn      func(ctx context.Context, tenantID, id string) (*holiday.Holiday, error)
	activeCalls   int
}

func (f *fakeHolidayRepository) Create(ctx context.Context, h *holiday.Holiday) error {
	return f.createFn(ctx, h)
}

func (f *fakeHolidayRepository) FindByYear(ctx context.Context, tenantID string, year int) ([]holiday.Holiday, error) {
	return f.findByYearFn(ctx, tenantID, year)
}

func (f *fakeHolidayRepository) ActiveDates(ctx context.Context, tenantID string, year int) ([]time.Time, error) {
	f.activeCalls++
	return f.activeDatesFn(ctx, tenantID, year)
}

func (f *fakeHolidayRepository) Delete(ctx context.Context, tenantID, id string) (*holiday.Holiday, error) {
	return f.deleteFn(ctx, tenantID, id)
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestHolidayService_IsHoliday(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	cacheKey := holiday.CacheKey(tenantID, 2025)

	t.Run("cache hit skips repository", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		repo := &fakeHolidayRepository{}
		svc := holiday.NewService(repo, rdb, zap.NewNop())

		cached, _ := json.Marshal([]string{"2025-01-01", "2025-08-17"})
		rmock.ExpectGet(cacheKey).SetVal(string(cached))

		ok, err := svc.IsHoliday(ctx, tenantID, date("2025-08-17"))

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0, repo.activeCalls)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		repo := &fakeHolidayRepository{
			activeDatesFn: func(ctx context.Context, tid string, year int) ([]time.Time, error) {
				assert.Equal(t, 2025, year)
				return []time.Time{date("2025-01-01")}, nil
			},
		}
		svc := holiday.NewService(repo, rdb, zap.NewNop())

		payload, _ := json.Marshal([]string{"2025-01-01"})
		rmock.ExpectGet(cacheKey).RedisNil()
		rmock.ExpectSet(cacheKey, payload, 12*time.Hour).SetVal("OK")

		ok, err := svc.IsHoliday(ctx, tenantID, date("2025-03-05"))

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 1, repo.activeCalls)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("works without redis", func(t *testing.T) {
		repo := &fakeHolidayRepository{
			activeDatesFn: func(ctx context.Context, tid string, year int) ([]time.Time, error) {
				return []time.Time{date("2025-12-25")}, nil
			},
		}
		svc := holiday.NewService(repo, nil, zap.NewNop())

		ok, err := svc.IsHoliday(ctx, tenantID, date("2025-12-25"))

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &fakeHolidayRepository{
			activeDatesFn: func(ctx context.Context, tid string, year int) ([]time.Time, error) {
				return nil, errors.New("db down")
			},
		}
		_, err := holiday.NewService(repo, nil, zap.NewNop()).IsHoliday(ctx, tenantID, date("2025-12-25"))
		assert.Error(t, err)
	})
}

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	t.Run("success invalidates year key", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		repo := &fakeHolidayRepository{
			createFn: func(ctx context.Context, h *holiday.Holiday) error {
				assert.Equal(t, "Independence Day", h.Name)
				assert.True(t, h.IsActive)
				h.ID = uuid.New()
				return nil
			},
		}
		rmock.ExpectDel(holiday.CacheKey(tenantID, 2025)).SetVal(1)

		resp, err := holiday.NewService(repo, rdb, zap.NewNop()).Create(ctx, tenantID, holiday.CreateHolidayRequest{
			Name: " Independence Day ",
			Date: "2025-08-17",
		})

		assert.NoError(t, err)
		assert.Equal(t, "2025-08-17", resp.Date)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("duplicate date", func(t *testing.T) {
		repo := &fakeHolidayRepository{
			createFn: func(ctx context.Context, h *holiday.Holiday) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_holidays_tenant_date"}
			},
		}

		_, err := holiday.NewService(repo, nil, zap.NewNop()).Create(ctx, tenantID, holiday.CreateHolidayRequest{Name: "X", Date: "2025-08-17"})

		assert.ErrorIs(t, err, holidayerrors.ErrHolidayAlreadyExists)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := holiday.NewService(&fakeHolidayRepository{}, nil, zap.NewNop()).Create(ctx, tenantID, holiday.CreateHolidayRequest{Name: "X", Date: "17/08/2025"})
		assert.ErrorIs(t, err, holidayerrors.ErrInvalidDate)
	})
}

func TestHolidayService_Delete(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()

	t.Run("success invalidates year key", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		id := uuid.NewString()
		repo := &fakeHolidayRepository{
			deleteFn: func(ctx context.Context, tid, hid string) (*holiday.Holiday, error) {
				assert.Equal(t, id, hid)
				return &holiday.Holiday{Date: date("2024-12-25")}, nil
			},
		}
		rmock.ExpectDel(holiday.CacheKey(tenantID, 2024)).SetVal(1)

		err := holiday.NewService(repo, rdb, zap.NewNop()).Delete(ctx, tenantID, id)

		assert.NoError(t, err)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("malformed id", func(t *testing.T) {
		err := holiday.NewService(&fakeHolidayRepository{}, nil, zap.NewNop()).Delete(ctx, tenantID, "nope")
		assert.ErrorIs(t, err, holidayerrors.ErrHolidayNotFound)
	})
}
