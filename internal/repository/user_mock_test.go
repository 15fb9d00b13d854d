package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// Mock-level tests pin the exact SQL shape issued against Postgres; the
// SQLite-backed tests in this package cover behavior end to end.
func TestUserRepository_IsAdmin_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "is_admin" FROM "users"`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}).AddRow(true))

	admin, err := repo.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.True(t, admin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_DeleteTokens_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "fcm_tokens" WHERE token IN`)).
		WithArgs("tok-a", "tok-b").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	removed, err := repo.DeleteTokens(ctx, []string{"tok-a", "tok-b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
