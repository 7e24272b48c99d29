package onboarding_test

import (
	"context"
	"testing"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/onboarding"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newRepoWithMock(t *testing.T) (onboarding.Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)
	return onboarding.NewRepository(gdb), mock
}

func TestRepository_SkipOpenTasks(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	tenantID, processID := uuid.NewString(), uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "onboarding_tasks" SET "status"=\$\d+,"updated_at"=\$\d+ WHERE .*process_id = \$\d+ AND status IN \(\$\d+,\$\d+\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := repo.SkipOpenTasks(context.Background(), tenantID, processID)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_TransitionProcess(t *testing.T) {
	t.Run("stamps completion", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		completedAt := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "onboarding_processes" SET "completed_at"=\$\d+,"status"=\$\d+,"updated_at"=\$\d+ WHERE .*id = \$\d+ AND status IN \(\$\d+,\$\d+\)`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		n, err := repo.TransitionProcess(context.Background(), uuid.NewString(), uuid.NewString(),
			[]string{onboarding.ProcessNotStarted, onboarding.ProcessInProgress}, onboarding.ProcessCompleted, &completedAt)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row in source state", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "onboarding_processes" SET "status"=\$\d+,"updated_at"=\$\d+ WHERE .*status IN \(\$\d+\)`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		n, err := repo.TransitionProcess(context.Background(), uuid.NewString(), uuid.NewString(),
			[]string{onboarding.ProcessNotStarted}, onboarding.ProcessInProgress, nil)

		assert.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestRepository_CountOpenTasks(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "onboarding_tasks" WHERE .*process_id = \$\d+ AND status IN`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountOpenTasks(context.Background(), uuid.NewString(), uuid.NewString())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
