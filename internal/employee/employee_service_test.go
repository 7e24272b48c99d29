package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/employee"
	employeeerrors "github.com/heyyrintu/hrms-sub001/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	findByIDFn              func(ctx context.Context, tenantID, id string) (*employee.Employee, error)
	findAllFn               func(ctx context.Context, tenantID, status string) ([]employee.Employee, error)
	findDirectReportsFn     func(ctx context.Context, tenantID, managerID string) ([]employee.Employee, error)
	directReportIDsFn       func(ctx context.Context, tenantID, managerID string) ([]string, error)
	findActiveWithManagerFn func(ctx context.Context, tenantID string) ([]employee.Employee, error)
	updateFieldFn           func(ctx context.Context, tenantID, id, column string, value any) (int64, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, tenantID, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, tenantID, status string) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, tenantID, status)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindDirectReports(ctx context.Context, tenantID, managerID string) ([]employee.Employee, error) {
	if f.findDirectReportsFn != nil {
		return f.findDirectReportsFn(ctx, tenantID, managerID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) DirectReportIDs(ctx context.Context, tenantID, managerID string) ([]string, error) {
	if f.directReportIDsFn != nil {
		return f.directReportIDsFn(ctx, tenantID, managerID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindActiveWithManager(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	if f.findActiveWithManagerFn != nil {
		return f.findActiveWithManagerFn(ctx, tenantID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) UpdateField(ctx context.Context, tenantID, id, column string, value any) (int64, error) {
	if f.updateFieldFn != nil {
		return f.updateFieldFn(ctx, tenantID, id, column, value)
	}
	return 1, nil
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	managerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		repo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, tid, eid string) (*employee.Employee, error) {
				assert.Equal(t, tenantID, tid)
				return &employee.Employee{ID: id, FirstName: "Ada", LastName: "Lovelace", Status: employee.StatusActive, ManagerID: &managerID}, nil
			},
		}
		svc := employee.NewService(repo)

		resp, err := svc.GetByID(ctx, tenantID, id.String())

		assert.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", resp.FullName)
		assert.Equal(t, managerID.String(), *resp.ManagerID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{})

		_, err := svc.GetByID(ctx, tenantID, uuid.NewString())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		svc := employee.NewService(&fakeEmployeeRepository{})

		_, err := svc.GetByID(ctx, tenantID, "123")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by status", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findAllFn: func(ctx context.Context, tid, status string) ([]employee.Employee, error) {
				assert.Equal(t, employee.StatusActive, status)
				return []employee.Employee{{ID: uuid.New(), FirstName: "A"}}, nil
			},
		}

		resp, err := employee.NewService(repo).GetAll(ctx, uuid.NewString(), employee.StatusActive)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := employee.NewService(&fakeEmployeeRepository{}).GetAll(ctx, uuid.NewString(), "RETIRED")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidStatus)
	})
}

func TestEmployeeService_GetTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("requires employee profile", func(t *testing.T) {
		_, err := employee.NewService(&fakeEmployeeRepository{}).GetTeam(ctx, uuid.NewString(), "")
		assert.ErrorIs(t, err, employeeerrors.ErrNoEmployeeProfile)
	})

	t.Run("repo error", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findDirectReportsFn: func(ctx context.Context, tid, mid string) ([]employee.Employee, error) {
				return nil, errors.New("db down")
			},
		}
		_, err := employee.NewService(repo).GetTeam(ctx, uuid.NewString(), uuid.NewString())
		assert.Error(t, err)
	})
}

func TestMapRepositoryError(t *testing.T) {
	assert.Nil(t, employee.MapRepositoryError(nil))
	assert.ErrorIs(t, employee.MapRepositoryError(gorm.ErrRecordNotFound), employeeerrors.ErrEmployeeNotFound)
	assert.ErrorIs(t,
		employee.MapRepositoryError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_tenant_email"}),
		employeeerrors.ErrEmployeeEmailAlreadyExists,
	)
	assert.ErrorIs(t,
		employee.MapRepositoryError(errors.New(`duplicate key value violates unique constraint "uq_employees_tenant_number"`)),
		employeeerrors.ErrEmployeeNumberAlreadyExists,
	)

	other := errors.New("boom")
	assert.Equal(t, other, employee.MapRepositoryError(other))
}
