package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// Deleting an account must remove shares on both sides. A psychologist's
// observations about students may not outlive the psychologist's account.
func TestUserPostgreSQL_Delete_CascadesSharesForBothRoles(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgreSQL(db)
	id := uint(7)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "mood_entries" WHERE user_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "shares" WHERE student_id = \$1 OR psychologist_id = \$2`).
		WithArgs(id, id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "assessments" WHERE user_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "appointments" SET "deleted_at"=\$1 WHERE \(student_id = \$2 OR psychologist_id = \$3\)`).
		WithArgs(sqlmock.AnyArg(), id, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET "deleted_at"=\$1 WHERE "users"\."id" = \$2`).
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), id)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgreSQL_Delete_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserPostgreSQL(db)
	id := uint(7)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "mood_entries"`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "shares"`).
		WithArgs(id, id).
		WillReturnError(gorm.ErrInvalidTransaction)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), id)

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
