package member

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestRepository_Create_GeneratesCheckinCode(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	cols := []string{"id", "user_id", "phone", "birth_date", "checkin_code", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members")).
		WithArgs(7, "+111222", nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 7, "+111222", nil, "some-uuid", now))

	m, err := repo.Create(context.Background(), 7, "+111222", nil)
	require.NoError(t, err)
	require.Equal(t, 1, m.ID)
	require.NotEmpty(t, m.CheckinCode)
}

func TestRepository_GetOrCreateByUser(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	cols := []string{"id", "user_id", "phone", "birth_date", "checkin_code", "created_at"}

	t.Run("returns existing member", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM members")).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 7, "", nil, "code-1", now))

		m, err := repo.GetOrCreateByUser(context.Background(), 7)
		require.NoError(t, err)
		require.Equal(t, 1, m.ID)
	})

	t.Run("creates profile on first access", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM members")).
			WithArgs(8).
			WillReturnRows(sqlmock.NewRows(cols))

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO members")).
			WithArgs(8, "", nil, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(2, 8, "", nil, "code-2", now))

		m, err := repo.GetOrCreateByUser(context.Background(), 8)
		require.NoError(t, err)
		require.Equal(t, 2, m.ID)
		require.Equal(t, 8, m.UserID)
	})
}

func TestRepository_GetByCheckinCode(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	cols := []string{"id", "user_id", "phone", "birth_date", "checkin_code", "created_at", "user_name", "user_email"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM members m")).
		WithArgs("code-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 7, "", nil, "code-1", now, "Test User", "user@test.com"))

	m, err := repo.GetByCheckinCode(context.Background(), "code-1")
	require.NoError(t, err)
	require.Equal(t, "Test User", m.UserName)

	mock.ExpectQuery(regexp.QuoteMeta("FROM members m")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	_, err = repo.GetByCheckinCode(context.Background(), "missing")
	require.ErrorIs(t, err, ErrMemberNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM members WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 1))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM members WHERE id = $1")).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), 2), ErrMemberNotFound)
}
