package leave_test

import (
	"context"
	"testing"

	"github.com/heyyrintu/hrms-sub001/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepoWithMock(t *testing.T) (leave.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)
	return leave.NewRepository(gdb), mock
}

func TestRepository_CreditBalance(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	tenantID, employeeID, typeID := uuid.NewString(), uuid.NewString(), uuid.NewString()

	mock.ExpectQuery(`INSERT INTO leave_balances .* ON CONFLICT \(tenant_id, employee_id, leave_type_id, year\) DO UPDATE`).
		WithArgs(tenantID, employeeID, typeID, 2025, 1.0).
		WillReturnRows(sqlmock.NewRows([]string{"total_days"}).AddRow(2.0))

	total, err := repo.CreditBalance(context.Background(), tenantID, employeeID, typeID, 2025, 1.0)

	assert.NoError(t, err)
	assert.Equal(t, 2.0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_EnsureLeaveType(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	tenantID := uuid.NewString()
	typeID := uuid.New()

	mock.ExpectExec(`INSERT INTO leave_types .* ON CONFLICT \(tenant_id, code\) DO NOTHING`).
		WithArgs(tenantID, "Compensatory Off", leave.CodeCompOff).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "leave_types" WHERE .*code = \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "code", "name"}).
			AddRow(typeID.String(), tenantID, leave.CodeCompOff, "Compensatory Off"))

	lt, err := repo.EnsureLeaveType(context.Background(), tenantID, leave.CodeCompOff, "Compensatory Off")

	assert.NoError(t, err)
	assert.Equal(t, typeID, lt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
